package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/permitpath/permitpath/pkg/adapters/httpapi"
	"github.com/permitpath/permitpath/pkg/adapters/memory"
	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/permitpath/permitpath/pkg/fees"
	"github.com/permitpath/permitpath/pkg/jurisdiction"
	"github.com/permitpath/permitpath/pkg/registry"
	"github.com/permitpath/permitpath/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	reg := registry.New()
	require.NoError(t, reg.Register(&domain.QuestionTree{
		ProjectType: "water-heater",
		Name:        "Water Heater Replacement",
		Questions: []domain.Question{
			{ID: "fuel", Text: "What fuel does the new unit use?", Type: domain.KindSelect, Required: true,
				Options: []domain.Option{
					{Value: "gas", Label: "Natural gas"},
					{Value: "electric", Label: "Electric"},
				}},
			{ID: "capacity", Text: "What is the tank capacity?", Type: domain.KindNumber, Required: true, Unit: "gal",
				Validation: &domain.ValidationRule{Min: func() *float64 { v := 10.0; return &v }()}},
			{ID: "venting", Text: "Does the venting change?", Type: domain.KindYesNo,
				Condition: &domain.Condition{Field: "fuel", Equals: "gas"}},
		},
	}))

	schedule, err := fees.Parse([]byte(`
jurisdictions:
  oakland-ca:
    water-heater:
      flat: 189
`))
	require.NoError(t, err)

	directory, err := jurisdiction.Parse([]byte(`
offices:
  oakland-ca:
    name: Oakland Permit Center
    agency: Planning & Building Department
    address: 250 Frank H. Ogawa Plaza, Oakland, CA 94612
    online_submission: true
`))
	require.NoError(t, err)

	manager := session.NewManager(reg, memory.NewStore())
	handler := httpapi.NewHandler(manager, reg,
		httpapi.WithFeeSchedule(schedule),
		httpapi.WithDirectory(directory),
	)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestAPI_FullWalkthrough(t *testing.T) {
	srv := newTestServer(t)

	// Create a session.
	var created struct {
		SessionID string `json:"session_id"`
		Next      *struct {
			Question domain.Question `json:"question"`
			Number   int             `json:"number"`
			Progress int             `json:"progress"`
		} `json:"next"`
	}
	code := doJSON(t, http.MethodPost, srv.URL+"/sessions", map[string]any{"project_type": "water-heater"}, &created)
	require.Equal(t, http.StatusCreated, code)
	require.NotEmpty(t, created.SessionID)
	require.NotNil(t, created.Next)
	assert.Equal(t, "fuel", created.Next.Question.ID)
	assert.Equal(t, 1, created.Next.Number)

	base := srv.URL + "/sessions/" + created.SessionID

	// Answer the select question.
	var answered struct {
		Validation domain.Validation `json:"validation"`
		Next       *struct {
			Question domain.Question `json:"question"`
		} `json:"next"`
		Done bool `json:"done"`
	}
	code = doJSON(t, http.MethodPost, base+"/answers", map[string]any{"question_id": "fuel", "answer": "gas"}, &answered)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, answered.Validation.Valid)
	require.NotNil(t, answered.Next)
	assert.Equal(t, "capacity", answered.Next.Question.ID)

	// Validation failure returns 422 and does not advance.
	code = doJSON(t, http.MethodPost, base+"/answers", map[string]any{"question_id": "capacity", "answer": "three"}, &answered)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.False(t, answered.Validation.Valid)
	assert.Equal(t, "Please enter a valid number", answered.Validation.Error)

	code = doJSON(t, http.MethodPost, base+"/answers", map[string]any{"question_id": "capacity", "answer": 50}, &answered)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, answered.Next)
	assert.Equal(t, "venting", answered.Next.Question.ID)

	code = doJSON(t, http.MethodPost, base+"/answers", map[string]any{"question_id": "venting", "answer": "no"}, &answered)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, answered.Done)

	// Review shows formatted answers.
	var review struct {
		Items []domain.ReviewItem `json:"items"`
	}
	code = doJSON(t, http.MethodGet, base+"/review", nil, &review)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, review.Items, 3)
	assert.Equal(t, "Natural gas", review.Items[0].Answer)
	assert.Equal(t, "50 gal", review.Items[1].Answer)

	// Summary snapshot.
	var summary domain.Summary
	code = doJSON(t, http.MethodGet, base+"/summary", nil, &summary)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Water Heater Replacement", summary.ProjectName)

	// Delete.
	req, err := http.NewRequest(http.MethodDelete, base+"/", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAPI_Rewind(t *testing.T) {
	srv := newTestServer(t)

	var created struct {
		SessionID string `json:"session_id"`
	}
	doJSON(t, http.MethodPost, srv.URL+"/sessions", map[string]any{"project_type": "water-heater"}, &created)
	base := srv.URL + "/sessions/" + created.SessionID

	doJSON(t, http.MethodPost, base+"/answers", map[string]any{"question_id": "fuel", "answer": "gas"}, nil)
	doJSON(t, http.MethodPost, base+"/answers", map[string]any{"question_id": "capacity", "answer": 40}, nil)

	var rewound struct {
		Next *struct {
			Question domain.Question `json:"question"`
		} `json:"next"`
	}
	code := doJSON(t, http.MethodPost, base+"/rewind", map[string]any{"question_id": "fuel"}, &rewound)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, rewound.Next)
	assert.Equal(t, "fuel", rewound.Next.Question.ID)

	// Rewinding to something never answered conflicts.
	code = doJSON(t, http.MethodPost, base+"/rewind", map[string]any{"question_id": "venting"}, nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestAPI_Errors(t *testing.T) {
	srv := newTestServer(t)

	code := doJSON(t, http.MethodPost, srv.URL+"/sessions", map[string]any{"project_type": "castle"}, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code = doJSON(t, http.MethodGet, srv.URL+"/sessions/ghost/next", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAPI_Trees(t *testing.T) {
	srv := newTestServer(t)

	var trees struct {
		ProjectTypes []string `json:"project_types"`
	}
	code := doJSON(t, http.MethodGet, srv.URL+"/trees", nil, &trees)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"water-heater"}, trees.ProjectTypes)
}

func TestAPI_FeesAndJurisdictions(t *testing.T) {
	srv := newTestServer(t)

	var est fees.Estimate
	code := doJSON(t, http.MethodGet, srv.URL+"/fees/estimate?jurisdiction=oakland-ca&project_type=water-heater", nil, &est)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 189.0, est.Total)

	code = doJSON(t, http.MethodGet, srv.URL+"/fees/estimate?jurisdiction=gotham&project_type=water-heater", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)

	var office jurisdiction.Office
	code = doJSON(t, http.MethodGet, srv.URL+"/jurisdictions/oakland-ca", nil, &office)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Oakland Permit Center", office.Name)
}

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
