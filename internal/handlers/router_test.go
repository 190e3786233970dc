package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/careslot/appointment-service/internal/events"
	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/repositories/postgres"
	"github.com/careslot/appointment-service/internal/services"
	"github.com/careslot/appointment-service/internal/utils"
)

const testJWTSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Appointment{}, &models.Notification{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	slogLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger := utils.NewSlogLogger(slogLogger)

	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	bus := events.NewBus(slogLogger)

	serviceManager := services.NewServiceManager(repo, bus, logger, services.ServiceConfig{
		JWTSecret: testJWTSecret,
		JWTTTL:    time.Hour,
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	t.Cleanup(func() {
		serviceManager.Shutdown(context.Background())
	})

	router := gin.New()
	SetupMiddleware(router, logger)
	NewHandlerManager(serviceManager, logger, testJWTSecret).SetupRoutes(router)
	return router
}

func perform(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func register(t *testing.T, router *gin.Engine, email string, role models.UserRole) string {
	t.Helper()

	body := map[string]any{
		"email":     email,
		"password":  "secret1",
		"firstName": "Test",
		"lastName":  "User",
		"role":      role,
	}
	if role == models.RoleDoctor {
		body["specialization"] = "Cardiology"
	}

	w := perform(t, router, http.MethodPost, "/api/auth/register", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("Register %s failed: %d %s", email, w.Code, w.Body.String())
	}
	return decode(t, w)["id"].(string)
}

func login(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := perform(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Login %s failed: %d %s", email, w.Code, w.Body.String())
	}
	return decode(t, w)["token"].(string)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := perform(t, router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decode(t, w)
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", body["status"])
	}
	if body["timestamp"] == nil {
		t.Error("Expected a timestamp")
	}
}

func TestAuthEndpoints(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "alice@example.com", models.RolePatient)

	t.Run("duplicate email returns 409", func(t *testing.T) {
		w := perform(t, router, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email":     "alice@example.com",
			"password":  "secret1",
			"firstName": "Other",
			"lastName":  "User",
			"role":      "patient",
		})
		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d", w.Code)
		}
	})

	t.Run("invalid payload returns 400", func(t *testing.T) {
		w := perform(t, router, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email": "not-an-email",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		w := perform(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "alice@example.com",
			"password": "not-it",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("profile requires a token", func(t *testing.T) {
		w := perform(t, router, http.MethodGet, "/api/auth/profile", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("profile round trip", func(t *testing.T) {
		token := login(t, router, "alice@example.com")

		w := perform(t, router, http.MethodGet, "/api/auth/profile", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if got := decode(t, w)["email"]; got != "alice@example.com" {
			t.Errorf("Expected alice@example.com, got %v", got)
		}

		w = perform(t, router, http.MethodPatch, "/api/auth/profile", token, map[string]any{
			"email":     "alice@example.com",
			"firstName": "Alicia",
			"lastName":  "User",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if got := decode(t, w)["first_name"]; got != "Alicia" {
			t.Errorf("Expected Alicia, got %v", got)
		}
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		w := perform(t, router, http.MethodGet, "/api/auth/profile", "not-a-token", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}

func TestAppointmentFlow(t *testing.T) {
	router := newTestRouter(t)

	doctorID := register(t, router, "doctor@example.com", models.RoleDoctor)
	register(t, router, "patient@example.com", models.RolePatient)

	doctorToken := login(t, router, "doctor@example.com")
	patientToken := login(t, router, "patient@example.com")

	t.Run("listing without a token returns 401", func(t *testing.T) {
		w := perform(t, router, http.MethodGet, "/api/appointments", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("doctor directory lists the doctor", func(t *testing.T) {
		w := perform(t, router, http.MethodGet, "/api/doctors", patientToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var doctors []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &doctors); err != nil {
			t.Fatalf("Failed to decode doctors: %v", err)
		}
		if len(doctors) != 1 || doctors[0]["id"] != doctorID {
			t.Fatalf("Expected the registered doctor, got %v", doctors)
		}
	})

	var appointmentID string

	t.Run("patient books an appointment", func(t *testing.T) {
		w := perform(t, router, http.MethodPost, "/api/appointments", patientToken, map[string]any{
			"doctor_id": doctorID,
			"date":      time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
			"reason":    "Annual checkup",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		body := decode(t, w)
		appointmentID = body["id"].(string)
		if body["status"] != "scheduled" {
			t.Errorf("Expected scheduled, got %v", body["status"])
		}
	})

	t.Run("booking in the past returns 400", func(t *testing.T) {
		w := perform(t, router, http.MethodPost, "/api/appointments", patientToken, map[string]any{
			"doctor_id": doctorID,
			"date":      time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
			"reason":    "Time travel",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("doctor sees the booking with patient fields", func(t *testing.T) {
		w := perform(t, router, http.MethodGet, "/api/appointments", doctorToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var list []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
			t.Fatalf("Failed to decode list: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("Expected 1 appointment, got %d", len(list))
		}
		if list[0]["patient_first_name"] == nil {
			t.Error("Expected patient display fields for the doctor")
		}
	})

	t.Run("doctor is notified about the booking", func(t *testing.T) {
		waitForUnread(t, router, doctorToken, 1)

		w := perform(t, router, http.MethodGet, "/api/notifications", doctorToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var list []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
			t.Fatalf("Failed to decode notifications: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("Expected 1 notification, got %d", len(list))
		}
		notificationID := list[0]["id"].(string)

		w = perform(t, router, http.MethodPatch, fmt.Sprintf("/api/notifications/%s/read", notificationID), doctorToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		waitForUnread(t, router, doctorToken, 0)
	})

	t.Run("stranger cannot fetch the appointment", func(t *testing.T) {
		register(t, router, "stranger@example.com", models.RolePatient)
		strangerToken := login(t, router, "stranger@example.com")

		w := perform(t, router, http.MethodGet, "/api/appointments/"+appointmentID, strangerToken, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404 for cross-owner access, got %d", w.Code)
		}
	})

	t.Run("patient cancels", func(t *testing.T) {
		w := perform(t, router, http.MethodDelete, "/api/appointments/"+appointmentID, patientToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if got := decode(t, w)["message"]; got != "Appointment cancelled successfully" {
			t.Errorf("Expected cancellation message, got %v", got)
		}
	})

	t.Run("doctor sees the cancellation", func(t *testing.T) {
		w := perform(t, router, http.MethodGet, "/api/appointments/"+appointmentID, doctorToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if got := decode(t, w)["status"]; got != "cancelled" {
			t.Errorf("Expected cancelled, got %v", got)
		}
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		w := perform(t, router, http.MethodPatch, "/api/appointments/"+appointmentID, doctorToken, map[string]any{
			"status": "completed",
		})
		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestDoctorBooksAppointment(t *testing.T) {
	router := newTestRouter(t)

	register(t, router, "doctor.a@example.com", models.RoleDoctor)
	doctorBID := register(t, router, "doctor.b@example.com", models.RoleDoctor)
	doctorAToken := login(t, router, "doctor.a@example.com")

	w := perform(t, router, http.MethodPost, "/api/appointments", doctorAToken, map[string]any{
		"doctor_id": doctorBID,
		"date":      time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"reason":    "Referral consult",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decode(t, w)
	if body["doctor_id"] != doctorBID {
		t.Errorf("Expected doctor B on the appointment, got %v", body["doctor_id"])
	}
	if body["status"] != "scheduled" {
		t.Errorf("Expected scheduled, got %v", body["status"])
	}
}

// waitForUnread polls the unread counter until it reaches want; notification
// delivery goes through the in-process bus and is asynchronous.
func waitForUnread(t *testing.T, router *gin.Engine, token string, want float64) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	var last any
	for time.Now().Before(deadline) {
		w := perform(t, router, http.MethodGet, "/api/notifications/unread-count", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		last = decode(t, w)["count"]
		if last == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for unread count %v, last saw %v", want, last)
}
