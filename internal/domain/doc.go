// Package domain contains the entities of the task assignment system
// (employees, managers, tasks, notifications, history entries, projects) and
// the pure rules over them: the availability step function, workload ranking,
// the task status state machine, and history summaries. Nothing here performs I/O.
package domain
