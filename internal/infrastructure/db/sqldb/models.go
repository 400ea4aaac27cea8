package sqldb

import (
	"time"

	"github.com/testbot/testbot-api/internal/core/domain"
)

// Blob columns (custom_fields, paused_state, form_fields, results) hold JSON
// text and are decoded at the read boundary.

type userModel struct {
	ID           string `gorm:"column:id;primaryKey;size:64"`
	Name         string `gorm:"column:name;not null"`
	Email        string `gorm:"column:email;size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         string `gorm:"column:role;size:32;not null"`
}

func (userModel) TableName() string { return "users" }

func (m userModel) toDomain() domain.User {
	return domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
	}
}

type clientModel struct {
	ID   string `gorm:"column:id;primaryKey;size:64"`
	Name string `gorm:"column:name;not null"`
}

func (clientModel) TableName() string { return "clients" }

type projectModel struct {
	ID       string `gorm:"column:id;primaryKey;size:64"`
	ClientID string `gorm:"column:client_id;size:64;index;not null"`
	Name     string `gorm:"column:name;not null"`
}

func (projectModel) TableName() string { return "projects" }

type templateModel struct {
	ID          string  `gorm:"column:id;primaryKey;size:64"`
	Name        string  `gorm:"column:name;not null"`
	Description string  `gorm:"column:description;type:text"`
	FormFields  *string `gorm:"column:form_fields;type:text"`
	IsCustom    bool    `gorm:"column:is_custom;not null"`
}

func (templateModel) TableName() string { return "test_templates" }

type testCaseModel struct {
	ID           string  `gorm:"column:id;primaryKey;size:64"`
	ProjectID    string  `gorm:"column:project_id;size:64;index;not null"`
	TemplateID   string  `gorm:"column:template_id;size:64;not null"`
	AssignedToID *string `gorm:"column:assigned_to_id;size:64"`
	Status       string  `gorm:"column:status;size:16;not null;default:pending"`
	CustomFields *string `gorm:"column:custom_fields;type:text"`
	PausedState  *string `gorm:"column:paused_state;type:text"`
}

func (testCaseModel) TableName() string { return "test_cases" }

type reportModel struct {
	ID            string    `gorm:"column:id;primaryKey;size:64"`
	TestCaseID    string    `gorm:"column:test_case_id;size:64;index;not null"`
	TesterID      string    `gorm:"column:tester_id;size:64;not null"`
	ExecutionDate time.Time `gorm:"column:execution_date;not null"`
	Results       *string   `gorm:"column:results;type:text"`
}

func (reportModel) TableName() string { return "reports" }
