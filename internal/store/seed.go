package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pmsdemo/pms-api/internal/domain"
)

// seedDate is the last-updated date carried by the default staff directory.
var seedDate = time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC)

// DefaultEmployees returns the staff directory the service starts with.
func DefaultEmployees() []*domain.Employee {
	employees := []*domain.Employee{
		{ID: "EMP001", Name: "Aniket Baral", Email: "arun.kumar@company.com", Department: "Engineering", Designation: "Backend Engineer", CurrentTaskDetails: "Develop REST APIs for PMS module"},
		{ID: "EMP002", Name: "Magesh", Email: "priya.sharma@company.com", Department: "Engineering", Designation: "Frontend Engineer", CurrentTaskDetails: "Design dashboard UI using React"},
		{ID: "EMP003", Name: "Rishi Raj", Email: "ravi.teja@company.com", Department: "QA", Designation: "QA Engineer", CurrentTaskDetails: "Perform unit and integration testing"},
		{ID: "EMP004", Name: "S Harsha", Email: "sneha.iyer@company.com", Department: "Engineering", Designation: "Database Engineer", CurrentTaskDetails: "Create database schema and relations"},
		{ID: "EMP005", Name: "Tanishka Singh", Email: "vikram.singh@company.com", Department: "Engineering", Designation: "Backend Engineer", CurrentTaskDetails: "Optimize backend performance"},
		{ID: "EMP006", Name: "Viraj Ray", Email: "anjali.patel@company.com", Department: "Product", Designation: "Technical Writer", CurrentTaskDetails: "Prepare project documentation"},
		{ID: "EMP007", Name: "Rahul Mehta", Email: "rahul.mehta@company.com", Department: "Engineering", Designation: "Security Engineer", CurrentTaskDetails: "Implement authentication and authorization"},
		{ID: "EMP008", Name: "Kavya Nair", Email: "kavya.nair@company.com", Department: "Design", Designation: "UI/UX Designer", CurrentTaskDetails: "Design user experience flows"},
		{ID: "EMP009", Name: "Suresh Reddy", Email: "suresh.reddy@company.com", Department: "Engineering", Designation: "DevOps Engineer", CurrentTaskDetails: "Handle deployment and CI/CD pipeline"},
		{ID: "EMP010", Name: "Neha Verma", Email: "neha.verma@company.com", Department: "QA", Designation: "SDET", CurrentTaskDetails: "Create automated test cases"},
		{ID: "EMP011", Name: "Karthik Raj", Email: "karthik.raj@company.com", Department: "Engineering", Designation: "Frontend Engineer", CurrentTaskDetails: "Integrate frontend with backend APIs"},
		{ID: "EMP012", Name: "Pooja Malhotra", Email: "pooja.malhotra@company.com", Department: "Data", Designation: "Data Analyst", CurrentTaskDetails: "Prepare performance reports"},
		{ID: "EMP013", Name: "Amit Choudhary", Email: "amit.choudhary@company.com", Department: "Engineering", Designation: "Full Stack Engineer", CurrentTaskDetails: "Implement task management module"},
		{ID: "EMP014", Name: "Divya Srinivasan", Email: "divya.srinivasan@company.com", Department: "Product", Designation: "Product Analyst", CurrentTaskDetails: "Design analytics dashboard"},
		{ID: "EMP015", Name: "Manoj K", Email: "manoj.k@company.com", Department: "Engineering", Designation: "Senior Engineer", CurrentTaskDetails: "Review code and manage pull requests"},
	}
	for _, e := range employees {
		e.UpdatedOn = seedDate
	}
	return employees
}

// DefaultManagers returns the managers the service starts with.
func DefaultManagers() []*domain.Manager {
	return []*domain.Manager{
		{ID: "MGR001", Name: "Rajesh Krishnan", Department: "Engineering"},
		{ID: "MGR002", Name: "Sunita Reddy", Department: "Product"},
	}
}

// Seed loads the default directory into empty stores.
// Collections that already hold records are left alone.
func Seed(ctx context.Context, s Stores) error {
	managers, err := s.Managers.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list managers: %w", err)
	}
	if len(managers) == 0 {
		for _, m := range DefaultManagers() {
			if err := s.Managers.Create(ctx, m); err != nil {
				return fmt.Errorf("failed to seed manager %s: %w", m.ID, err)
			}
		}
	}

	employees, err := s.Employees.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}
	if len(employees) == 0 {
		for _, e := range DefaultEmployees() {
			if err := s.Employees.Create(ctx, e); err != nil {
				return fmt.Errorf("failed to seed employee %s: %w", e.ID, err)
			}
		}
	}

	return nil
}
