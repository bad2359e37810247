/*
Package ports defines the driven ports (interfaces) of the task router.

These interfaces decouple the routing core from external implementations,
allowing it to work with any text-generation backend and any cache store.

# Key Interfaces

  - Generator: The external text-generation collaborator (prompt -> text).
  - ResponseCache: Optional storage for generated responses, keyed by prompt.
*/
package ports
