package domain

import (
	"fmt"
	"time"
)

// Notification is a message addressed to one employee about a task.
type Notification struct {
	ID           int64     `json:"notificationId"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	ManagerID    string    `json:"managerId"`
	ManagerName  string    `json:"managerName"`
	TaskID       int64     `json:"taskId"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AssignmentMessage renders the text sent to an employee selected for a task.
func AssignmentMessage(managerName, taskTitle string) string {
	return fmt.Sprintf("%s selected you to do '%s' task.", managerName, taskTitle)
}

// Clone returns a copy of the notification.
func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}
