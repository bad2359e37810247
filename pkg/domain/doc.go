/*
Package domain contains the core domain models of the task router.

It defines the routing decision, the per-request state threaded through the
state machine, the final response and the static description of the routing
graph. This package is kept pure and free of external dependencies like I/O
or network clients, following Hexagonal Architecture principles.

# Key Entities

  - Agent: The closed set of intents a task can be routed to.
  - Decision: The Manager's routing output (agent + echoed input).
  - RequestState: The request-scoped snapshot advanced node by node.
  - Response: The {agent, input, result} payload returned to callers.
  - Node: A point in the routing graph, used for introspection and diagrams.
*/
package domain
