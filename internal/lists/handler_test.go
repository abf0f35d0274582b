package lists

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func uploadRequest(t *testing.T, fileName, contentType, content string, agents ...string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	for _, agent := range agents {
		if err := writer.WriteField("agents", agent); err != nil {
			t.Fatalf("write agents: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

func TestHandlerUploadAndFetch(t *testing.T) {
	router := newTestRouter(newTestService(nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "contacts.csv", "text/csv", sevenRows))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ListID == "" {
		t.Fatalf("expected listId, got empty")
	}
	if created.Message != "7 items distributed among 3 agents" {
		t.Fatalf("unexpected message %q", created.Message)
	}
	if len(created.Groups) != 3 || len(created.Groups[0].Records) != 3 {
		t.Fatalf("unexpected groups %+v", created.Groups)
	}

	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, httptest.NewRequest(http.MethodGet, "/api/v1/lists/"+created.ListID, nil))
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
	var fetched ListResponse
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.ListID != created.ListID || fetched.TotalRecordCount != 7 {
		t.Fatalf("unexpected fetched list %+v", fetched)
	}

	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, httptest.NewRequest(http.MethodGet, "/api/v1/lists?limit=500", nil))
	if respList.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respList.Code)
	}
	var summaries []ListSummary
	if err := json.NewDecoder(respList.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	first := summaries[0].Groups[0]
	if first.RecordCount != 3 || len(first.Preview) != 3 || first.Preview[0].FirstName != "Ann" {
		t.Fatalf("unexpected summary group %+v", first)
	}
}

func TestHandlerUploadAgentsField(t *testing.T) {
	router := newTestRouter(newTestService(nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "contacts.csv", "", sevenRows, "ana", "ben"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(created.Groups) != 2 || created.Groups[0].AgentID != "ana" {
		t.Fatalf("expected request roster, got %+v", created.Groups)
	}
}

func TestHandlerUploadErrors(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		roster     []string
		wantStatus int
		wantCode   string
	}{
		{
			name: "unsupported type",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "notes.txt", "text/plain", sevenRows)
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantCode:   "unsupported_file_type",
		},
		{
			name: "format",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "contacts.csv", "text/csv", "Name,Phone\nAnn,111\n")
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "format_error",
		},
		{
			name: "empty roster",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "contacts.csv", "text/csv", sevenRows)
			},
			roster:     []string{},
			wantStatus: http.StatusBadRequest,
			wantCode:   "config_error",
		},
		{
			name: "duplicate agent",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "contacts.csv", "text/csv", sevenRows, "ana", "ana")
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
		},
		{
			name: "missing file",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/lists", nil)
				req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
				return req
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(nil)
			if tt.roster != nil {
				svc.Roster = tt.roster
			}
			router := newTestRouter(svc)

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, tt.req(t))
			if resp.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, resp.Code, resp.Body.String())
			}
			if code := decodeError(t, resp); code != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, code)
			}
		})
	}
}

func TestHandlerUploadTooLarge(t *testing.T) {
	svc := newTestService(nil)
	svc.MaxUploadBytes = 16
	router := newTestRouter(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "contacts.csv", "text/csv", sevenRows))
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", resp.Code)
	}
	if code := decodeError(t, resp); code != "file_too_large" {
		t.Fatalf("expected file_too_large, got %s", code)
	}
}

func TestHandlerGetUnknown(t *testing.T) {
	router := newTestRouter(newTestService(nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/lists/missing", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if code := decodeError(t, resp); code != "not_found" {
		t.Fatalf("expected not_found, got %s", code)
	}
}

func TestHandlerAgents(t *testing.T) {
	router := newTestRouter(newTestService(nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body struct {
		Agents []string `json:"agents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Agents) != 3 || body.Agents[0] != "John Doe" {
		t.Fatalf("unexpected agents %v", body.Agents)
	}
}
