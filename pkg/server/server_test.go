package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/rankboard/pkg/models/api"
	"github.com/de-tools/rankboard/pkg/models/store"
	"github.com/de-tools/rankboard/pkg/runtime/terminal/export"
	"github.com/de-tools/rankboard/pkg/services/config"
	"github.com/de-tools/rankboard/pkg/services/institute"
	"github.com/de-tools/rankboard/pkg/services/report"
	"github.com/de-tools/rankboard/pkg/store/duckdb"
	sqlstore "github.com/de-tools/rankboard/pkg/store/sql"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedExplorer serves one institute out of an in-memory duckdb
func seedExplorer(t *testing.T) institute.Explorer {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	rw, err := sqlstore.NewRecordStore(db)
	require.NoError(t, err)

	ctx := context.Background()
	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, rw.PutInstitute(ctx, store.Institute{
		ID:        "inst-1",
		Name:      "Sunrise",
		Branding:  &store.Branding{FooterText: "sunrise.example"},
		CreatedAt: created,
	}))
	require.NoError(t, rw.AddStudents(ctx, "inst-1", []store.Student{
		{ID: "s1", Name: "Asha", ClassOrCourse: "10-B", CreatedAt: created},
		{ID: "s2", Name: "Ravi", ClassOrCourse: "9-A", CreatedAt: created, Deleted: true},
	}))
	require.NoError(t, rw.MarkAttendance(ctx, "inst-1", "2025-06-02",
		map[string]string{"s1": "present"}, created))
	require.NoError(t, rw.AddTests(ctx, "inst-1", []store.Test{
		{ID: "t1", StudentID: "s1", Subject: "Math", MarksObtained: 90, MaxMarks: 100, CreatedAt: created},
		{ID: "t2", StudentID: "s1", Subject: "Science", MarksObtained: 40, MaxMarks: 100, CreatedAt: created.Add(time.Hour)},
	}))

	branding, err := config.NewBrandingRegistry("")
	require.NoError(t, err)
	return institute.NewExplorer(rw, branding, institute.DefaultSettings())
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	webAPI := NewWebAPI(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Explorer: seedExplorer(t),
			Page:     export.PageConfigFromLayout(report.DefaultLayoutSettings()),
		},
	})
	testServer := httptest.NewServer(webAPI.Handler())
	defer testServer.Close()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		check          func(t *testing.T, resp *http.Response, body []byte)
	}{
		{
			name:           "ListStudents",
			path:           "/api/v1/institutes/inst-1/students",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, _ *http.Response, body []byte) {
				var response []api.StudentSummary
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response, 1)
				assert.Equal(t, "Asha", response[0].Name)
				assert.Equal(t, api.Attendance{Present: 1, Total: 1, Percentage: 100}, response[0].Attendance)
				require.NotNil(t, response[0].Insights)
				assert.Equal(t, "Average", response[0].Insights.Category)
			},
		},
		{
			name:           "GetInsights",
			path:           "/api/v1/institutes/inst-1/students/s1/insights",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, _ *http.Response, body []byte) {
				var response api.StudentAnalytics
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response.Tests, 2)
				assert.Equal(t, "Math", response.Tests[0].Subject)
				assert.Equal(t, []string{"Math"}, response.Insights.StrongSubjects)
				assert.Equal(t, []string{"Science"}, response.Insights.WeakSubjects)
				assert.Equal(t, api.ScoreRange{Low: 60, High: 70}, response.Insights.PredictedRange)
			},
		},
		{
			name:           "GetInsights_DeletedStudent",
			path:           "/api/v1/institutes/inst-1/students/s2/insights",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "ListStudents_UnknownInstitute",
			path:           "/api/v1/institutes/nowhere/students",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "GetReport",
			path:           "/api/v1/institutes/inst-1/students/s1/report",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, _ *http.Response, body []byte) {
				var response api.ReportDocument
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "Asha_Report", response.Title)
				assert.False(t, response.Overflowed)
			},
		},
		{
			name:           "GetReport_Text",
			path:           "/api/v1/institutes/inst-1/students/s1/report?format=text",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp *http.Response, body []byte) {
				assert.Equal(t, `attachment; filename="Asha_Report.txt"`, resp.Header.Get("Content-Disposition"))
				assert.Contains(t, string(body), "Average Score: 65.00%")
				assert.Contains(t, string(body), "Math  90/100  90%")
				assert.Contains(t, string(body), "sunrise.example")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")
			assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			if tc.check != nil {
				tc.check(t, resp, body)
			}
		})
	}
}
