package diagnose

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selffix-ai/repairguide/core"
)

func TestHTTPDiagnoser_SendsFormAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/diagnose", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Refrigerator", r.FormValue("appliance_type"))
		assert.Equal(t, "fan is noisy", r.FormValue("user_prompt"))

		f, hdr, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "fridge.jpg", hdr.Filename)
		assert.Equal(t, []byte{0xff, 0xd8}, data)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(core.DiagnosisResult{
			Response:  "Step 1: Unplug",
			Diagnosis: &core.Diagnosis{MostLikelyIssue: "Fan", ConfidencePercent: 80},
		})
	}))
	defer srv.Close()

	d := New(srv.URL+"/", WithAPIKey("secret"), WithTimeout(5*time.Second))
	res, err := d.Diagnose(context.Background(), core.DiagnosisRequest{
		ApplianceType: "Refrigerator",
		Description:   "fan is noisy",
		Image:         &core.Attachment{Name: "fridge.jpg", Data: []byte{0xff, 0xd8}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Step 1: Unplug", res.RepairText())
	assert.Equal(t, 80, res.Diagnosis.ConfidencePercent)
}

func TestHTTPDiagnoser_NoImageField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("image")
		assert.ErrorIs(t, err, http.ErrMissingFile)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"response":"Tip: check the fuse"}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Diagnose(context.Background(), core.DiagnosisRequest{ApplianceType: "Dishwasher"})
	require.NoError(t, err)
	assert.Equal(t, "Tip: check the fuse", res.Response)
}

func TestHTTPDiagnoser_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Diagnose(context.Background(), core.DiagnosisRequest{ApplianceType: "Oven"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestHTTPDiagnoser_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Diagnose(context.Background(), core.DiagnosisRequest{ApplianceType: "Oven"})
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestHTTPDiagnoser_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Diagnose(context.Background(), core.DiagnosisRequest{ApplianceType: "Oven"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding diagnosis response")
}

func TestHTTPDiagnoser_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.URL).Diagnose(ctx, core.DiagnosisRequest{ApplianceType: "Oven"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(core.DiagnosisRequest{ApplianceType: "  "}), ErrMissingAppliance)
	assert.NoError(t, Validate(core.DiagnosisRequest{ApplianceType: "Microwave"}))
}

func TestMockDiagnoser(t *testing.T) {
	m := NewMock()

	_, err := m.Diagnose(context.Background(), core.DiagnosisRequest{})
	assert.ErrorIs(t, err, ErrMissingAppliance)

	res, err := m.Diagnose(context.Background(), core.DiagnosisRequest{ApplianceType: "Refrigerator"})
	require.NoError(t, err)
	assert.Equal(t, "Evaporator Fan Motor Failure", res.Diagnosis.MostLikelyIssue)
	assert.Len(t, res.RepairDetails.Steps, 5)
	assert.Contains(t, res.RepairText(), "Step 5: Reassemble the panel")
}

func TestNew_TimeoutDoesNotMutateCallerClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}
	d := New("http://example.test", WithHTTPClient(shared), WithTimeout(3*time.Second))

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 3*time.Second, d.client.Timeout)
	assert.NotSame(t, shared, d.client)
}

func TestNew_NilHTTPClientKeepsDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"response":"Step 1: Unplug"}`)
	}))
	defer srv.Close()

	d := New(srv.URL, WithHTTPClient(nil), WithTimeout(2*time.Second))
	require.NotNil(t, d.client)
	assert.Equal(t, 2*time.Second, d.client.Timeout)

	res, err := d.Diagnose(context.Background(), core.DiagnosisRequest{ApplianceType: "Oven"})
	require.NoError(t, err)
	assert.Equal(t, "Step 1: Unplug", res.Response)
}
