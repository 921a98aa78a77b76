package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/week"
)

func weeklyPath(params map[string]string) string {
	v := make(url.Values)
	for key, value := range params {
		v.Add(key, value)
	}
	if len(v) == 0 {
		return "/v1/weekly"
	}
	return "/v1/weekly?" + v.Encode()
}

func Test_weeklyApi_weekQuery(t *testing.T) {
	app := setup(t)

	// insertion order deliberately differs from start_date order
	intro := createWeek(t, "Introduction", "2024-01-08", "Course overview", "https://example.org/syllabus")
	revision := createWeek(t, "Revision", "2024-03-25", "Final revision")
	algebra := createWeek(t, "Algebra", "2024-01-15", "Linear equations")

	tests := []httpTest{
		{
			name: "default sort is start_date asc", path: weeklyPath(nil), wantCode: http.StatusOK,
			wantData: marchallObj(t, envelope{Success: true, Data: []week.Week{intro, algebra, revision}}),
		},
		{
			name: "sort=title&order=desc", path: weeklyPath(map[string]string{"sort": "title", "order": "desc"}), wantCode: http.StatusOK,
			wantData: marchallObj(t, envelope{Success: true, Data: []week.Week{revision, intro, algebra}}),
		},
		{
			name: "bogus sort falls back to start_date", path: weeklyPath(map[string]string{"sort": "lol"}), wantCode: http.StatusOK,
			wantData: marchallObj(t, envelope{Success: true, Data: []week.Week{intro, algebra, revision}}),
		},
		{
			name: "search", path: weeklyPath(map[string]string{"search": "equation"}), wantCode: http.StatusOK,
			wantData: marchallObj(t, envelope{Success: true, Data: []week.Week{algebra}}),
		},
		{
			name: "search (unknown)", path: weeklyPath(map[string]string{"search": "lol"}), wantCode: http.StatusOK,
			wantData: marchallObj(t, envelope{Success: true, Data: []week.Week{}}),
		},
		{
			name: "retrieve", path: weeklyPath(map[string]string{"id": "1"}), wantCode: http.StatusOK,
			wantData: marchallObj(t, envelope{Success: true, Data: intro}),
		},
		{
			name: "retrieve unknown", path: weeklyPath(map[string]string{"id": "99"}), wantCode: http.StatusNotFound,
			wantData: marchallObj(t, envelope{Message: "week not found"}),
		},
		{
			name: "retrieve non-int id", path: weeklyPath(map[string]string{"id": "lol"}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, envelope{Message: "id must be an integer"}),
		},
		{
			name: "invalid resource", path: weeklyPath(map[string]string{"resource": "lol"}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, envelope{Message: "invalid resource; use 'weeks' or 'comments'"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_weeklyApi_weekCreate(t *testing.T) {
	app := setup(t)

	t.Run("created", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{
			"title":       "Geometry",
			"start_date":  "2024-03-05",
			"description": "Triangles and circles",
			"links":       []string{"https://example.org/a", "https://example.org/b"},
		})
		req, rec := newRequest(http.MethodPost, weeklyPath(nil), body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		env := decodeResp(t, rec)
		assert.True(t, env.Success)

		var wk week.Week
		require.NoError(t, json.Unmarshal(env.Data, &wk))
		assert.Equal(t, "Geometry", wk.Title)
		assert.Equal(t, "2024-03-05", wk.StartDate.String())
		assert.Equal(t, week.LinkList{"https://example.org/a", "https://example.org/b"}, wk.Links)
	})

	t.Run("no links serializes to empty list", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{
			"title":       "Statistics",
			"start_date":  "2024-03-12",
			"description": "Mean, median, mode",
		})
		req, rec := newRequest(http.MethodPost, weeklyPath(nil), body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		env := decodeResp(t, rec)
		assert.Contains(t, string(env.Data), `"links":[]`)
	})

	tests := []httpTest{
		{
			name: "out of range date", method: http.MethodPost, path: weeklyPath(nil),
			body: marchallObj(t, map[string]interface{}{
				"title": "Bad", "start_date": "2024-13-40", "description": "nope",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, envelope{
				Message: "invalid input",
				Errors:  map[string]string{"start_date": "must be a valid date in YYYY-MM-DD format"},
			}),
		},
		{
			name: "non-canonical date", method: http.MethodPost, path: weeklyPath(nil),
			body: marchallObj(t, map[string]interface{}{
				"title": "Bad", "start_date": "2024-3-5", "description": "nope",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, envelope{
				Message: "invalid input",
				Errors:  map[string]string{"start_date": "must be a valid date in YYYY-MM-DD format"},
			}),
		},
		{
			name: "empty payload", method: http.MethodPost, path: weeklyPath(nil),
			body:     marchallObj(t, map[string]string{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, envelope{
				Message: "invalid input",
				Errors: map[string]string{
					"title":       "this field is required",
					"start_date":  "this field is required",
					"description": "this field is required",
				},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_weeklyApi_weekUpdate(t *testing.T) {
	app := setup(t)

	wk := createWeek(t, "Algebra", "2024-01-15", "Linear equations", "https://example.org/notes")

	t.Run("title only", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{"id": wk.ID, "title": "Algebra II"})
		req, rec := newRequest(http.MethodPut, weeklyPath(nil), body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeResp(t, rec)
		assert.Equal(t, "Week updated", env.Message)

		var updated week.Week
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Equal(t, "Algebra II", updated.Title)
		assert.Equal(t, "2024-01-15", updated.StartDate.String())                     // untouched
		assert.Equal(t, week.LinkList{"https://example.org/notes"}, updated.Links) // untouched
		assert.False(t, updated.UpdatedAt.Before(wk.UpdatedAt))
	})

	t.Run("links replaced by empty list", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{"id": wk.ID, "links": []string{}})
		req, rec := newRequest(http.MethodPut, weeklyPath(nil), body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeResp(t, rec)
		var updated week.Week
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Empty(t, updated.Links)
	})

	tests := []httpTest{
		{
			name: "bad date", method: http.MethodPut, path: weeklyPath(nil),
			body:     marchallObj(t, map[string]interface{}{"id": wk.ID, "start_date": "2024-13-40"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, envelope{
				Message: "invalid input",
				Errors:  map[string]string{"start_date": "must be a valid date in YYYY-MM-DD format"},
			}),
		},
		{
			name: "no fields", method: http.MethodPut, path: weeklyPath(nil),
			body:     marchallObj(t, map[string]interface{}{"id": wk.ID}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, envelope{Message: "no fields to update"}),
		},
		{
			name: "unknown week", method: http.MethodPut, path: weeklyPath(nil),
			body:     marchallObj(t, map[string]interface{}{"id": 99, "title": "Ghost"}),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, envelope{Message: "week not found"}),
		},
		{
			name: "comments not updatable", method: http.MethodPut, path: weeklyPath(map[string]string{"resource": "comments"}),
			body:     marchallObj(t, map[string]interface{}{"id": 1}),
			wantCode: http.StatusMethodNotAllowed,
			wantData: marchallObj(t, envelope{Message: "Method Not Allowed"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_weeklyApi_weekDestroy(t *testing.T) {
	app := setup(t)

	wk := createWeek(t, "Algebra", "2024-01-15", "Linear equations")
	keep := createWeek(t, "Geometry", "2024-01-22", "Triangles")
	now := time.Now().UTC()
	createComment(t, wk.ID, "Alice", "See you there", now)
	createComment(t, wk.ID, "Bob", "Bring calculators", now.Add(time.Minute))
	kept := createComment(t, keep.ID, "Carol", "Unrelated", now)

	tests := []httpTest{
		{
			name: "missing id", method: http.MethodDelete, path: weeklyPath(nil),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, envelope{Message: "id parameter is missing"}),
		},
		{
			name: "deleted with comments", method: http.MethodDelete, path: weeklyPath(map[string]string{"id": "1"}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, envelope{Success: true, Message: "Week and its comments deleted"}),
		},
		{
			name: "already gone", method: http.MethodDelete, path: weeklyPath(map[string]string{"id": "1"}),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, envelope{Message: "week not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// the cascade only touched the deleted week's comments
	ctx := context.Background()
	orphans, err := weekRepo.QueryCommentsByWeek(ctx, wk.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	remaining, err := weekRepo.QueryCommentsByWeek(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, []week.Comment{kept}, remaining)
}

func Test_weeklyApi_comments(t *testing.T) {
	app := setup(t)

	wk := createWeek(t, "Algebra", "2024-01-15", "Linear equations")
	now := time.Now().UTC()
	second := createComment(t, wk.ID, "Bob", "Posted later", now.Add(time.Minute))
	first := createComment(t, wk.ID, "Alice", "Posted first", now)

	commentsPath := func(params map[string]string) string {
		if params == nil {
			params = make(map[string]string)
		}
		params["resource"] = "comments"
		return weeklyPath(params)
	}

	t.Run("created", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{
			"week_id": wk.ID, "author": "Carol", "text": "Looking forward to it",
		})
		req, rec := newRequest(http.MethodPost, commentsPath(nil), body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		env := decodeResp(t, rec)
		var cmt week.Comment
		require.NoError(t, json.Unmarshal(env.Data, &cmt))
		assert.Equal(t, wk.ID, cmt.WeekID)
		assert.Equal(t, "Carol", cmt.Author)

		// delete it again to keep the list assertions below simple
		req, rec = newRequest(http.MethodDelete, commentsPath(map[string]string{"id": "3"}))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	tests := []httpTest{
		{
			name: "ordered by created_at asc", path: commentsPath(map[string]string{"week_id": "1"}), wantCode: http.StatusOK,
			wantData: marchallObj(t, envelope{Success: true, Data: []week.Comment{first, second}}),
		},
		{
			name: "empty thread", path: commentsPath(map[string]string{"week_id": "42"}), wantCode: http.StatusOK,
			wantData: marchallObj(t, envelope{Success: true, Data: []week.Comment{}}),
		},
		{
			name: "week_id required", path: commentsPath(nil), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, envelope{Message: "week_id parameter is missing"}),
		},
		{
			name: "week_id must be an int", path: commentsPath(map[string]string{"week_id": "lol"}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, envelope{Message: "week_id must be an integer"}),
		},
		{
			name: "comment on unknown week", method: http.MethodPost, path: commentsPath(nil),
			body:     marchallObj(t, map[string]interface{}{"week_id": 99, "author": "Ghost", "text": "boo"}),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, envelope{Message: "week not found"}),
		},
		{
			name: "empty comment", method: http.MethodPost, path: commentsPath(nil),
			body:     marchallObj(t, map[string]interface{}{"week_id": wk.ID}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, envelope{
				Message: "invalid input",
				Errors: map[string]string{
					"author": "this field is required",
					"text":   "this field is required",
				},
			}),
		},
		{
			name: "delete", method: http.MethodDelete, path: commentsPath(map[string]string{"id": "1"}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, envelope{Success: true, Message: "Comment deleted"}),
		},
		{
			name: "delete unknown", method: http.MethodDelete, path: commentsPath(map[string]string{"id": "99"}),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, envelope{Message: "comment not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
