package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/mockstage/interviewd/src/common/logs"
	"github.com/mockstage/interviewd/src/common/version"
	"github.com/mockstage/interviewd/src/interviewd/api"
	"github.com/mockstage/interviewd/src/interviewd/api/base"
	"github.com/mockstage/interviewd/src/interviewd/auth"
	"github.com/mockstage/interviewd/src/interviewd/db"
)

// =============================================================================
// Test Infrastructure
// =============================================================================

func init() {
	gin.SetMode(gin.TestMode)
}

// testAPI holds all the components needed for API testing
type testAPI struct {
	api        *api.API
	router     *gin.Engine
	database   *db.Database
	users      *db.UserRepository
	interviews *db.InterviewRepository
	questions  *db.QuestionRepository
	jwtService *auth.JWTService
	hasher     auth.PasswordHasher
}

// setupTestAPI creates a new test API instance with an in-memory database
func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()

	database, err := db.New(db.Config{
		PersistPath: "",
		LoadOnStart: false,
	})
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	tokenStore := auth.NewTokenStore(database.DB())
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(), tokenStore, newMockSettingsStore())

	// Cheap hashing keeps the suite fast
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	base.SetVersionInfo(&version.Info{
		Version:        "1.0.0-test",
		ReleaseName:    "Test",
		ReleaseVersion: "1.0.0",
		BuildDate:      "2024-01-01",
		GitCommit:      "abc1234",
	})

	logger := logs.New(logs.Config{
		Output: logs.OutputStdout,
		Level:  "error",
	})
	api.SetLogger(logger)

	users := db.NewUserRepository(database)
	interviews := db.NewInterviewRepository(database)
	questions := db.NewQuestionRepository(database)

	apiInstance := api.New(api.Config{
		UserRepo:      users,
		InterviewRepo: interviews,
		QuestionRepo:  questions,
		JWTService:    jwtService,
		Hasher:        hasher,
	})

	router := gin.New()
	apiInstance.RegisterRoutes(router)

	t.Cleanup(func() {
		_ = database.Shutdown()
	})

	return &testAPI{
		api:        apiInstance,
		router:     router,
		database:   database,
		users:      users,
		interviews: interviews,
		questions:  questions,
		jwtService: jwtService,
		hasher:     hasher,
	}
}

// createTestUser creates a user directly and returns the user and a token
func (ta *testAPI) createTestUser(t *testing.T, email, firstName, lastName, password string) (*db.User, string) {
	t.Helper()

	hash, err := ta.hasher.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := db.NewUser(email, firstName, lastName, hash)
	if err := ta.users.Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	token, err := ta.jwtService.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return user, token
}

// makeRequest makes an HTTP request to the test API
func (ta *testAPI) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ta.router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body as JSON
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, rec.Body.String())
	}
}

// expectMessage asserts the unified success envelope
func expectMessage(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("expected status %d, got %d\nBody: %s", status, rec.Code, rec.Body.String())
	}

	var response map[string]interface{}
	parseJSON(t, rec, &response)
	if response["message"] != message {
		t.Fatalf("expected message '%s', got '%v'", message, response["message"])
	}
}

// expectError asserts an error envelope with the given status and message
func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("expected status %d, got %d\nBody: %s", status, rec.Code, rec.Body.String())
	}

	var response map[string]interface{}
	parseJSON(t, rec, &response)
	if response["error"] == nil {
		t.Fatalf("expected error field in response\nBody: %s", rec.Body.String())
	}
	if response["message"] != message {
		t.Fatalf("expected message '%s', got '%v'", message, response["message"])
	}
}

// =============================================================================
// Base Endpoint Tests
// =============================================================================

func TestAPI_HandleRoot(t *testing.T) {
	ta := setupTestAPI(t)

	rec := ta.makeRequest("GET", "/", nil, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response map[string]interface{}
	parseJSON(t, rec, &response)

	if response["name"] != "interviewd" {
		t.Fatalf("expected name 'interviewd', got %v", response["name"])
	}
}

func TestAPI_HandleHealth(t *testing.T) {
	ta := setupTestAPI(t)

	rec := ta.makeRequest("GET", "/v1/health", nil, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestAPI_HandleVersion(t *testing.T) {
	ta := setupTestAPI(t)

	rec := ta.makeRequest("GET", "/v1/version", nil, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response map[string]interface{}
	parseJSON(t, rec, &response)
	if response["version"] != "1.0.0-test" {
		t.Fatalf("expected version '1.0.0-test', got %v", response["version"])
	}
}

// =============================================================================
// Auth Endpoint Tests
// =============================================================================

func TestAPI_Login(t *testing.T) {
	ta := setupTestAPI(t)
	user, _ := ta.createTestUser(t, "login@example.com", "Log", "In", "password1")

	rec := ta.makeRequest("POST", "/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "password1",
	}, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d\nBody: %s", rec.Code, rec.Body.String())
	}

	var response map[string]interface{}
	parseJSON(t, rec, &response)
	if response["token"] == nil || response["token"] == "" {
		t.Fatal("expected token in login response")
	}
	if response["user_id"] != user.ID {
		t.Fatalf("expected user id %s, got %v", user.ID, response["user_id"])
	}
}

func TestAPI_Login_WrongPassword(t *testing.T) {
	ta := setupTestAPI(t)
	ta.createTestUser(t, "login@example.com", "Log", "In", "password1")

	rec := ta.makeRequest("POST", "/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "wrong",
	}, "")

	expectError(t, rec, http.StatusUnauthorized, "Invalid credentials")
}

func TestAPI_Login_UnknownEmail(t *testing.T) {
	ta := setupTestAPI(t)

	rec := ta.makeRequest("POST", "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	}, "")

	// Indistinguishable from a wrong password
	expectError(t, rec, http.StatusUnauthorized, "Invalid credentials")
}

func TestAPI_Logout_RevokesToken(t *testing.T) {
	ta := setupTestAPI(t)
	_, token := ta.createTestUser(t, "out@example.com", "Log", "Out", "pw")

	rec := ta.makeRequest("POST", "/auth/logout", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	// The revoked token no longer opens the resource endpoints
	rec = ta.makeRequest("GET", "/users", nil, token)
	expectError(t, rec, http.StatusUnauthorized, "Token has been revoked")
}

func TestAPI_Validate(t *testing.T) {
	ta := setupTestAPI(t)
	user, token := ta.createTestUser(t, "check@example.com", "Che", "Ck", "pw")

	rec := ta.makeRequest("GET", "/auth/validate", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response map[string]interface{}
	parseJSON(t, rec, &response)
	if response["user_id"] != user.ID {
		t.Fatalf("expected user id %s, got %v", user.ID, response["user_id"])
	}
}

// =============================================================================
// Authentication Gate Tests
// =============================================================================

func TestAPI_ResourcesRequireToken(t *testing.T) {
	ta := setupTestAPI(t)

	paths := []string{"/users", "/interviews", "/questions"}
	for _, path := range paths {
		rec := ta.makeRequest("GET", path, nil, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without token, got %d", path, rec.Code)
		}
	}
}

func TestAPI_RejectsMalformedToken(t *testing.T) {
	ta := setupTestAPI(t)

	rec := ta.makeRequest("GET", "/users", nil, "garbage-token")
	expectError(t, rec, http.StatusUnauthorized, "Invalid token")
}

// =============================================================================
// User Endpoint Tests
// =============================================================================

func TestAPI_Users_List(t *testing.T) {
	ta := setupTestAPI(t)
	_, token := ta.createTestUser(t, "list@example.com", "Li", "St", "pw")

	rec := ta.makeRequest("GET", "/users", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var users []map[string]interface{}
	parseJSON(t, rec, &users)
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0]["email"] != "list@example.com" {
		t.Fatalf("expected email in listing, got %v", users[0]["email"])
	}
	// The password never crosses the wire, not even hashed
	if _, ok := users[0]["password"]; ok {
		t.Fatal("expected no password field in listing")
	}
	if _, ok := users[0]["passwordHash"]; ok {
		t.Fatal("expected no password hash field in listing")
	}
}

func TestAPI_Users_Create(t *testing.T) {
	ta := setupTestAPI(t)
	_, token := ta.createTestUser(t, "admin@example.com", "Ad", "Min", "pw")

	rec := ta.makeRequest("POST", "/users", map[string]interface{}{
		"email":     "new@example.com",
		"firstName": "New",
		"lastName":  "Person",
		"password":  "secret",
	}, token)

	expectMessage(t, rec, http.StatusCreated, "New user new@example.com created")
}

func TestAPI_Users_Create_MissingField(t *testing.T) {
	ta := setupTestAPI(t)
	_, token := ta.createTestUser(t, "admin@example.com", "Ad", "Min", "pw")

	rec := ta.makeRequest("POST", "/users", map[string]interface{}{
		"email":    "incomplete@example.com",
		"password": "secret",
	}, token)

	expectError(t, rec, http.StatusBadRequest, "All fields are required")
}

func TestAPI_Users_Create_DuplicateEmail(t *testing.T) {
	ta := setupTestAPI(t)
	_, token := ta.createTestUser(t, "taken@example.com", "Ta", "Ken", "pw")

	rec := ta.makeRequest("POST", "/users", map[string]interface{}{
		"email":     "TAKEN@example.com",
		"firstName": "Other",
		"lastName":  "Person",
		"password":  "secret",
	}, token)

	expectError(t, rec, http.StatusConflict, "Email is already in use")
}

func TestAPI_Users_Update(t *testing.T) {
	ta := setupTestAPI(t)
	user, token := ta.createTestUser(t, "update@example.com", "Up", "Date", "pw")

	rec := ta.makeRequest("PATCH", "/users", map[string]interface{}{
		"id":                user.ID,
		"email":             "update@example.com",
		"firstName":         "Upper",
		"lastName":          "Dated",
		"darkMode":          true,
		"interviewFontSize": 20,
	}, token)

	expectMessage(t, rec, http.StatusOK, "Upper Dated updated")

	got, err := ta.users.GetByID(user.ID)
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if !got.DarkMode {
		t.Fatal("expected dark mode to be updated")
	}
	if got.InterviewFontSize != 20 {
		t.Fatalf("expected font size 20, got %d", got.InterviewFontSize)
	}
	// Password was omitted, so the stored hash must survive
	if !ta.hasher.Verify(got.PasswordHash, "pw") {
		t.Fatal("expected original password to still verify")
	}
}

func TestAPI_Users_Update_MissingPreferences(t *testing.T) {
	ta := setupTestAPI(t)
	user, token := ta.createTestUser(t, "prefs@example.com", "Pre", "Fs", "pw")

	// Omitting darkMode/interviewFontSize is a validation failure, not a
	// silent reset
	rec := ta.makeRequest("PATCH", "/users", map[string]interface{}{
		"id":        user.ID,
		"email":     "prefs@example.com",
		"firstName": "Pre",
		"lastName":  "Fs",
	}, token)

	expectError(t, rec, http.StatusBadRequest, "All fields except password are required")
}

func TestAPI_Users_Update_NotFound(t *testing.T) {
	ta := setupTestAPI(t)
	_, token := ta.createTestUser(t, "admin@example.com", "Ad", "Min", "pw")

	rec := ta.makeRequest("PATCH", "/users", map[string]interface{}{
		"id":                "no-such-id",
		"email":             "ghost@example.com",
		"firstName":         "Gho",
		"lastName":          "St",
		"darkMode":          false,
		"interviewFontSize": 16,
	}, token)

	// Unresolved ids are 400 by contract, not 404
	expectError(t, rec, http.StatusBadRequest, "User not found")
}

func TestAPI_Users_Delete(t *testing.T) {
	ta := setupTestAPI(t)
	_, token := ta.createTestUser(t, "admin@example.com", "Ad", "Min", "pw")
	victim, _ := ta.createTestUser(t, "victim@example.com", "Vic", "Tim", "pw")

	rec := ta.makeRequest("DELETE", "/users", map[string]string{"id": victim.ID}, token)

	expectMessage(t, rec, http.StatusOK, "User victim@example.com with ID "+victim.ID+" deleted")
}

func TestAPI_Users_Delete_MissingID(t *testing.T) {
	ta := setupTestAPI(t)
	_, token := ta.createTestUser(t, "admin@example.com", "Ad", "Min", "pw")

	rec := ta.makeRequest("DELETE", "/users", map[string]string{}, token)

	expectError(t, rec, http.StatusBadRequest, "User ID Required")
}

// =============================================================================
// Interview Endpoint Tests
// =============================================================================

func TestAPI_Interviews_List_Empty(t *testing.T) {
	ta := setupTestAPI(t)
	_, token := ta.createTestUser(t, "admin@example.com", "Ad", "Min", "pw")

	// Empty collections are 400 by contract
	rec := ta.makeRequest("GET", "/interviews", nil, token)
	expectError(t, rec, http.StatusBadRequest, "No interviews found")
}

func TestAPI_Interviews_CreateAndList(t *testing.T) {
	ta := setupTestAPI(t)
	user, token := ta.createTestUser(t, "iv@example.com", "Inter", "Viewer", "pw")

	rec := ta.makeRequest("POST", "/interviews", map[string]string{
		"user":  user.ID,
		"title": "Backend Round",
	}, token)
	expectMessage(t, rec, http.StatusCreated, "New interview created")

	rec = ta.makeRequest("GET", "/interviews", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var interviews []map[string]interface{}
	parseJSON(t, rec, &interviews)
	if len(interviews) != 1 {
		t.Fatalf("expected 1 interview, got %d", len(interviews))
	}
	if interviews[0]["title"] != "Backend Round" {
		t.Fatalf("expected title in listing, got %v", interviews[0]["title"])
	}
	if interviews[0]["username"] != "Inter Viewer" {
		t.Fatalf("expected joined username, got %v", interviews[0]["username"])
	}
}

func TestAPI_Interviews_Create_DuplicateTitle(t *testing.T) {
	ta := setupTestAPI(t)
	alice, token := ta.createTestUser(t, "alice@example.com", "Alice", "Smith", "pw")
	bob, _ := ta.createTestUser(t, "bob@example.com", "Bob", "Jones", "pw")

	rec := ta.makeRequest("POST", "/interviews", map[string]string{
		"user":  alice.ID,
		"title": "Round 1",
	}, token)
	expectMessage(t, rec, http.StatusCreated, "New interview created")

	// Uniqueness is global and case-folded, so another user's interview
	// with the same title is still a conflict
	rec = ta.makeRequest("POST", "/interviews", map[string]string{
		"user":  bob.ID,
		"title": "round 1",
	}, token)
	expectError(t, rec, http.StatusConflict, "Duplicate interview title")
}

func TestAPI_Interviews_Update(t *testing.T) {
	ta := setupTestAPI(t)
	user, token := ta.createTestUser(t, "iv@example.com", "Inter", "Viewer", "pw")

	iv := db.NewInterview(user.ID, "Old Title")
	if err := ta.interviews.Create(iv); err != nil {
		t.Fatalf("failed to create interview: %v", err)
	}

	rec := ta.makeRequest("PATCH", "/interviews", map[string]string{
		"id":    iv.ID,
		"user":  user.ID,
		"title": "New Title",
	}, token)

	expectMessage(t, rec, http.StatusOK, "'New Title' updated")
}

func TestAPI_Interviews_Delete(t *testing.T) {
	ta := setupTestAPI(t)
	user, token := ta.createTestUser(t, "iv@example.com", "Inter", "Viewer", "pw")

	iv := db.NewInterview(user.ID, "Doomed Round")
	if err := ta.interviews.Create(iv); err != nil {
		t.Fatalf("failed to create interview: %v", err)
	}

	rec := ta.makeRequest("DELETE", "/interviews", map[string]string{"id": iv.ID}, token)

	expectMessage(t, rec, http.StatusOK, "Interview 'Doomed Round' with ID "+iv.ID+" deleted")
}

// =============================================================================
// Question Endpoint Tests
// =============================================================================

func TestAPI_Questions_CreateDefaults(t *testing.T) {
	ta := setupTestAPI(t)
	user, token := ta.createTestUser(t, "q@example.com", "Que", "Ry", "pw")

	iv := db.NewInterview(user.ID, "Question Round")
	if err := ta.interviews.Create(iv); err != nil {
		t.Fatalf("failed to create interview: %v", err)
	}

	rec := ta.makeRequest("POST", "/questions", map[string]interface{}{
		"user":      user.ID,
		"interview": iv.ID,
		"body":      "What is a channel?",
	}, token)
	expectMessage(t, rec, http.StatusCreated, "New question created")

	rec = ta.makeRequest("GET", "/questions", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var questions []map[string]interface{}
	parseJSON(t, rec, &questions)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0]["toggled"] != true {
		t.Fatalf("expected toggled to default true, got %v", questions[0]["toggled"])
	}
}

func TestAPI_Questions_Update_MergesOptionalFields(t *testing.T) {
	ta := setupTestAPI(t)
	user, token := ta.createTestUser(t, "q@example.com", "Que", "Ry", "pw")

	q := db.NewQuestion(user.ID, "interview-1", "Original body")
	q.Notes = "keep these notes"
	if err := ta.questions.Create(q); err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	// Toggled and notes omitted: the stored values must survive the update
	rec := ta.makeRequest("PATCH", "/questions", map[string]interface{}{
		"id":        q.ID,
		"user":      user.ID,
		"interview": "interview-1",
		"body":      "Rewritten body",
	}, token)
	expectMessage(t, rec, http.StatusOK, "'Rewritten body' updated")

	got, err := ta.questions.GetByID(q.ID)
	if err != nil {
		t.Fatalf("failed to get question: %v", err)
	}
	if !got.Toggled {
		t.Fatal("expected toggled to keep its stored value")
	}
	if got.Notes != "keep these notes" {
		t.Fatalf("expected notes to survive, got '%s'", got.Notes)
	}
}

func TestAPI_Questions_Delete(t *testing.T) {
	ta := setupTestAPI(t)
	user, token := ta.createTestUser(t, "q@example.com", "Que", "Ry", "pw")

	q := db.NewQuestion(user.ID, "interview-1", "Doomed question")
	if err := ta.questions.Create(q); err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	rec := ta.makeRequest("DELETE", "/questions", map[string]string{"id": q.ID}, token)

	expectMessage(t, rec, http.StatusOK, "Question 'Doomed question' with ID "+q.ID+" deleted")
}

func TestAPI_Questions_List_Empty(t *testing.T) {
	ta := setupTestAPI(t)
	_, token := ta.createTestUser(t, "q@example.com", "Que", "Ry", "pw")

	rec := ta.makeRequest("GET", "/questions", nil, token)
	expectError(t, rec, http.StatusBadRequest, "No questions found")
}
