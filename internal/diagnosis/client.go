package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pcoscompass/pcoscompass/internal/intake"
)

// DefaultTimeout bounds a single diagnosis call when no timeout is
// configured. The service can take a while on large narratives but must not
// hang the client forever.
const DefaultTimeout = 30 * time.Second

// Request is the JSON body of a diagnosis call. All measurements travel as
// numbers; only the patient name and region stay textual. The ultrasound
// image is not part of this request shape.
type Request struct {
	PatientName        string  `json:"patient_name"`
	Region             string  `json:"region"`
	CycleLengthDays    float64 `json:"cycle_length_days"`
	CyclesPerYear      float64 `json:"cycles_per_year"`
	TotalTestosterone  float64 `json:"total_testosterone"`
	SHBG               float64 `json:"shbg"`
	FastingInsulin     float64 `json:"fasting_insulin"`
	FastingGlucose     float64 `json:"fasting_glucose"`
	TSH                float64 `json:"tsh"`
	Prolactin          float64 `json:"prolactin"`
	CRP                float64 `json:"crp"`
	FollicleCountLeft  float64 `json:"follicle_count_left"`
	FollicleCountRight float64 `json:"follicle_count_right"`
	OvarianVolumeLeft  float64 `json:"ovarian_volume_left"`
	OvarianVolumeRight float64 `json:"ovarian_volume_right"`
}

// NewRequest builds the JSON request from the assembled payload of an intake
// record. Fields absent from the payload read as 0, matching the record's
// numeric coercion.
func NewRequest(r *intake.Record) Request {
	p := intake.Assemble(r)

	text := func(name string) string {
		raw, _ := p.Get(name)
		return strings.TrimSpace(raw)
	}
	number := func(name string) float64 {
		raw, ok := p.Get(name)
		if !ok {
			return 0
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0
		}
		return v
	}

	return Request{
		PatientName:        text("patient_name"),
		Region:             text("region"),
		CycleLengthDays:    number("cycle_length_days"),
		CyclesPerYear:      number("cycles_per_year"),
		TotalTestosterone:  number("total_testosterone"),
		SHBG:               number("shbg"),
		FastingInsulin:     number("fasting_insulin"),
		FastingGlucose:     number("fasting_glucose"),
		TSH:                number("tsh"),
		Prolactin:          number("prolactin"),
		CRP:                number("crp"),
		FollicleCountLeft:  number("follicle_count_left"),
		FollicleCountRight: number("follicle_count_right"),
		OvarianVolumeLeft:  number("ovarian_volume_left"),
		OvarianVolumeRight: number("ovarian_volume_right"),
	}
}

// Response is the service reply. An empty Recommendation means the engine
// produced no narrative; the orchestrator decides what to do with that.
type Response struct {
	Recommendation string `json:"recommendation"`
}

// TransportError covers every failure to obtain a parseable response:
// network errors (Status 0), non-2xx statuses and non-JSON bodies.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("diagnosis service returned status %d", e.Status)
	}
	return fmt.Sprintf("diagnosis service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client calls the external diagnosis service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL (scheme and host,
// e.g. "http://localhost:8000"). timeout <= 0 applies DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Diagnose posts the request to /pcos/api/ and decodes the reply. Errors are
// always *TransportError; a parseable reply without a recommendation is not
// an error at this layer.
func (c *Client) Diagnose(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pcos/api/", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return Response{}, &TransportError{Status: resp.StatusCode}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, &TransportError{Err: err}
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return Response{}, &TransportError{Err: fmt.Errorf("malformed response body: %w", err)}
	}
	return out, nil
}
