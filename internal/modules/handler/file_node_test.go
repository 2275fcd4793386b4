package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/appforge-io/appforge/internal/modules/model"
	"github.com/appforge-io/appforge/internal/modules/serializer"
	"github.com/appforge-io/appforge/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFileNodeService struct {
	mock.Mock
}

func (m *MockFileNodeService) Create(ctx context.Context, in service.CreateFileNodeInput) (*model.FileNode, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileNode), args.Error(1)
}

func (m *MockFileNodeService) List(ctx context.Context, projectID uuid.UUID) ([]*model.FileNode, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FileNode), args.Error(1)
}

func (m *MockFileNodeService) Update(ctx context.Context, id uuid.UUID, in service.UpdateFileNodeInput) (*model.FileNode, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileNode), args.Error(1)
}

func (m *MockFileNodeService) Delete(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileNodeService) Raw(ctx context.Context, id uuid.UUID, projectID uuid.UUID) (*service.RawFileOutput, error) {
	args := m.Called(ctx, id, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RawFileOutput), args.Error(1)
}

func TestFileNodeHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	projectID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setup          func(*MockFileNodeService)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"path": "/src/App.jsx", "content": "export default null;"}`,
			setup: func(svc *MockFileNodeService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateFileNodeInput) bool {
					return in.ProjectID == projectID && in.Path == "/src/App.jsx" && !in.IsFolder
				})).Return(&model.FileNode{ID: uuid.New(), Path: "/src/App.jsx"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "folder",
			body: `{"path": "/src", "is_folder": true}`,
			setup: func(svc *MockFileNodeService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateFileNodeInput) bool {
					return in.IsFolder
				})).Return(&model.FileNode{ID: uuid.New(), Path: "/src", IsFolder: true}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing path",
			body:           `{"content": "x"}`,
			setup:          func(svc *MockFileNodeService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate path",
			body: `{"path": "/src/App.jsx"}`,
			setup: func(svc *MockFileNodeService) {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrPathTaken)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockFileNodeService)
			tt.setup(svc)

			h := NewFileNodeHandler(svc)
			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.POST("/project/:project_id/files", h.Create)

			req := httptest.NewRequest(http.MethodPost, "/project/"+projectID.String()+"/files", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestFileNodeHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	projectID := uuid.New()
	nodeID := uuid.New()

	t.Run("reports deleted flag", func(t *testing.T) {
		svc := new(MockFileNodeService)
		svc.On("Delete", mock.Anything, nodeID, projectID).Return(true, nil)

		h := NewFileNodeHandler(svc)
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.DELETE("/project/:project_id/files/:node_id", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/project/"+projectID.String()+"/files/"+nodeID.String(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp serializer.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, true, data["deleted"])
	})

	t.Run("invalid node id", func(t *testing.T) {
		h := NewFileNodeHandler(new(MockFileNodeService))
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.DELETE("/project/:project_id/files/:node_id", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/project/"+projectID.String()+"/files/oops", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFileNodeHandler_Raw(t *testing.T) {
	gin.SetMode(gin.TestMode)
	projectID := uuid.New()
	nodeID := uuid.New()

	t.Run("serves content with sniffed type", func(t *testing.T) {
		svc := new(MockFileNodeService)
		svc.On("Raw", mock.Anything, nodeID, projectID).Return(&service.RawFileOutput{
			Name:        "index.html",
			Content:     []byte("<!DOCTYPE html><html></html>"),
			ContentType: "text/html; charset=utf-8",
		}, nil)

		h := NewFileNodeHandler(svc)
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.GET("/project/:project_id/files/:node_id/raw", h.Raw)

		req := httptest.NewRequest(http.MethodGet, "/project/"+projectID.String()+"/files/"+nodeID.String()+"/raw", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "index.html")
		assert.Equal(t, "<!DOCTYPE html><html></html>", w.Body.String())
	})

	t.Run("folder is 404", func(t *testing.T) {
		svc := new(MockFileNodeService)
		svc.On("Raw", mock.Anything, nodeID, projectID).Return(nil, service.ErrFileNodeNotFound)

		h := NewFileNodeHandler(svc)
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.GET("/project/:project_id/files/:node_id/raw", h.Raw)

		req := httptest.NewRequest(http.MethodGet, "/project/"+projectID.String()+"/files/"+nodeID.String()+"/raw", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
