package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/core/week"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database/dummy"
)

var (
	conf *core.Config

	studentRepo student.Repository
	weekRepo    week.Repository
	usrRepo     user.Repository
)

func setup(t *testing.T) Server {
	t.Helper()

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	studentRepo = dummydb.NewStudentRepository(db)
	weekRepo = dummydb.NewWeekRepository(db)
	usrRepo = dummydb.NewUserRepository(db)

	conf = &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "Darasa",
		SecretKey: "t3st-k3y",
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
	}

	// set up server
	return NewServer(
		&Options{
			Conf:           conf,
			Logger:         logsvc.NewConsoleLogger(log.New(io.Discard, "", 0)),
			DisableReqLogs: true,
			StudentSvc:     student.NewService(studentRepo),
			WeekSvc:        week.NewService(weekRepo),
			UserSvc:        user.NewService(usrRepo),
		},
	)
}

// envelope mirrors the API response body for building expected payloads.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// respEnvelope decodes an actual API response body.
type respEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func decodeResp(t *testing.T, rec *httptest.ResponseRecorder) respEnvelope {
	t.Helper()
	var env respEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decodeResp() failed: %v; body = %s", err, rec.Body.String())
	}
	return env
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	if l1, ok := j1.([]interface{}); ok {
		if l2, ok := j2.([]interface{}); ok {
			return assert.ElementsMatch(t, l1, l2), nil
		}
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// Fixtures

func createStudent(t *testing.T, studentID, name, email, pwd string) student.Student {
	t.Helper()
	stu := student.Student{
		StudentID: studentID,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if pwd != "" {
		if err := stu.SetPassword(pwd); err != nil {
			t.Fatalf("SetPassword() failed: %v", err)
		}
	}
	stu, err := studentRepo.CreateStudent(context.Background(), stu)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}

func createWeek(t *testing.T, title, startDate, description string, links ...string) week.Week {
	t.Helper()
	sd, err := core.ParseDate(startDate)
	if err != nil {
		t.Fatalf("ParseDate() failed: %v", err)
	}
	now := time.Now().UTC()
	wk, err := weekRepo.CreateWeek(context.Background(), week.Week{
		Title:       title,
		StartDate:   sd,
		Description: description,
		Links:       links,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateWeek() failed: %v", err)
	}
	return wk
}

func createComment(t *testing.T, weekID int, author, text string, createdAt time.Time) week.Comment {
	t.Helper()
	cmt, err := weekRepo.CreateComment(context.Background(), week.Comment{
		WeekID:    weekID,
		Author:    author,
		Text:      text,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("CreateComment() failed: %v", err)
	}
	return cmt
}

func createUser(t *testing.T, name, email, pwd string) user.User {
	t.Helper()
	usr := user.User{Name: name, Email: email}
	if err := usr.SetPassword(pwd); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	usr, err := usrRepo.UpdateOrCreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("UpdateOrCreateUser() failed: %v", err)
	}
	return usr
}
