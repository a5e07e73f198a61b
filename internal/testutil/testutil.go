package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/voltask/tasksphere/internal/auth"
	"github.com/voltask/tasksphere/internal/database/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.OTPRecord{},
		&models.Task{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TestContext bundles the pieces most handler and service tests need.
type TestContext struct {
	DB         *gorm.DB
	JWTService *auth.JWTService
	Mailer     *MockMailer
}

func NewTestContext(t *testing.T) *TestContext {
	t.Helper()
	return &TestContext{
		DB:         SetupTestDB(t),
		JWTService: CreateTestJWTService(),
		Mailer:     &MockMailer{},
	}
}

func (tc *TestContext) Cleanup() {
	sqlDB, err := tc.DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}

// CreateTestCompany creates a test company
func CreateTestCompany(t *testing.T, db *gorm.DB) *models.Company {
	t.Helper()

	company := &models.Company{
		Base: models.Base{ID: uuid.New()},
		Name: "Test Company " + uuid.New().String()[:8],
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("failed to create test company: %v", err)
	}
	return company
}

// CreateTestUser creates an active test user with the given company and role.
// The password is always "testpassword123".
func CreateTestUser(t *testing.T, db *gorm.DB, company *models.Company, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("testpassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Base:         models.Base{ID: uuid.New()},
		Name:         "Test User",
		Email:        "test-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: hash,
		Role:         role,
		CompanyID:    company.ID,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	user.Company = company
	return user
}

// CreateTestTask creates a task in the given company.
func CreateTestTask(t *testing.T, db *gorm.DB, company *models.Company, creator *models.User, assignee *models.User) *models.Task {
	t.Helper()

	task := &models.Task{
		Base:      models.Base{ID: uuid.New()},
		Title:     "Test Task " + uuid.New().String()[:8],
		Status:    models.TaskStatusPending,
		CompanyID: company.ID,
		CreatedBy: creator.ID,
	}
	if assignee != nil {
		task.AssignedTo = &assignee.ID
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour)
}

// GenerateTestToken generates a valid session token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()

	token, err := jwtService.GenerateToken(user.ID, user.CompanyID, user.Role)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return token
}

// AuthenticatedRequest creates an HTTP request with a bearer token
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	req := UnauthenticatedRequest(t, method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// UnauthenticatedRequest creates an HTTP request with a JSON body
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reqBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

// SentOTP is one captured OTP delivery.
type SentOTP struct {
	To      string
	Code    string
	Subject string
	Heading string
	Line    string
}

// SentInvite is one captured invite delivery.
type SentInvite struct {
	To           string
	Name         string
	TempPassword string
	Role         string
	InvitedBy    string
}

// MockMailer records deliveries instead of sending them. Tests read the OTP
// codes and temp passwords out of it.
type MockMailer struct {
	mu      sync.Mutex
	OTPs    []SentOTP
	Invites []SentInvite
}

func (m *MockMailer) SendOTP(_ context.Context, to, code, subject, heading, line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OTPs = append(m.OTPs, SentOTP{To: to, Code: code, Subject: subject, Heading: heading, Line: line})
	return nil
}

func (m *MockMailer) SendInvite(_ context.Context, to, name, tempPassword, role, invitedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Invites = append(m.Invites, SentInvite{To: to, Name: name, TempPassword: tempPassword, Role: role, InvitedBy: invitedBy})
	return nil
}

// LastOTP returns the most recently captured OTP delivery.
func (m *MockMailer) LastOTP() (SentOTP, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.OTPs) == 0 {
		return SentOTP{}, false
	}
	return m.OTPs[len(m.OTPs)-1], true
}

// LastInvite returns the most recently captured invite delivery.
func (m *MockMailer) LastInvite() (SentInvite, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Invites) == 0 {
		return SentInvite{}, false
	}
	return m.Invites[len(m.Invites)-1], true
}

// OTPCount returns how many OTP emails were captured.
func (m *MockMailer) OTPCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.OTPs)
}
