// Package service contains the application use cases. It orchestrates domain
// objects and the record store (defined in internal/store) to fulfill the
// features of the API.
//
// Key components:
//
// 1. Ranking (EmployeeService.Ranking):
//   - Orders employees by workload and classifies their availability
//
// 2. Notification issuing (NotificationService):
//   - Creates messages addressed to one employee about one task
//
// 3. History logging (HistoryService):
//   - Keeps the per-employee timeline of assignments and their status
//
// 4. Assignment orchestration (TaskService):
//   - Creates tasks, assigns them, and advances their status
//   - Every write path runs under one lock, so counters and workload stay consistent
//
// 5. Import reconciliation (TaskService.ReconcileImport):
//   - Turns externally supplied rows into created and assigned tasks,
//     reporting per-row failures instead of aborting
//
// The service layer depends on domain entities and store interfaces, never on a
// specific backend.
package service
