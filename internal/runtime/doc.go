// Package runtime implements the routing state machine.
//
// A request enters the Manager node, which asks the Generator to classify
// the task. The decision selects exactly one terminal node from a fixed
// routing table; that node produces the result and the request ends.
package runtime
