// Package scoreapi is the device agent's client for the score endpoints. It
// does not retry on its own: transient failures are reported as such and the
// caller's pending queue handles replay.
package scoreapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/marcusta/golf-serie-sub009/internal/domain/leaderboard"
	"github.com/marcusta/golf-serie-sub009/internal/domain/scorecard"
	"github.com/marcusta/golf-serie-sub009/internal/platform/logging"
	"github.com/marcusta/golf-serie-sub009/internal/platform/resilience"
	"github.com/marcusta/golf-serie-sub009/internal/usecase"
)

var errScoreAPITransient = crerr.New("score api transient failure")

// IsTransient reports whether the failure should re-enter the retry queue.
func IsTransient(err error) bool {
	return crerr.Is(err, errScoreAPITransient)
}

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type envelope struct {
	APIVersion string          `json:"apiVersion"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      *errorBody      `json:"error,omitempty"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type scoreWriteRequest struct {
	ParticipantID int `json:"participantId"`
	Hole          int `json:"hole"`
	Shots         int `json:"shots"`
}

type participantPayload struct {
	ID             int       `json:"id"`
	CompetitionID  int       `json:"competitionId"`
	TeamID         int       `json:"teamId"`
	TeamName       string    `json:"teamName"`
	PositionName   string    `json:"positionName"`
	DisplayName    string    `json:"displayName"`
	IsLocked       bool      `json:"isLocked"`
	HandicapIndex  float64   `json:"handicapIndex"`
	CourseHandicap int       `json:"courseHandicap"`
	Scores         []int     `json:"scores"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type leaderboardEntryPayload struct {
	ParticipantID    int    `json:"participantId"`
	DisplayName      string `json:"displayName"`
	TeamID           int    `json:"teamId"`
	TeamName         string `json:"teamName"`
	PositionName     string `json:"positionName"`
	HolesPlayed      int    `json:"holesPlayed"`
	TotalShots       int    `json:"totalShots"`
	RelativeToPar    int    `json:"relativeToPar"`
	GaveUp           bool   `json:"gaveUp"`
	NetTotalShots    *int   `json:"netTotalShots,omitempty"`
	NetRelativeToPar *int   `json:"netRelativeToPar,omitempty"`
}

type leaderboardPayload struct {
	CompetitionID int                       `json:"competitionId"`
	ScoringMode   string                    `json:"scoringMode"`
	TeeName       string                    `json:"teeName,omitempty"`
	TotalPar      int                       `json:"totalPar,omitempty"`
	Entries       []leaderboardEntryPayload `json:"entries"`
}

type teamResultPayload struct {
	TeamID           int    `json:"teamId"`
	TeamName         string `json:"teamName"`
	ParticipantCount int    `json:"participantCount"`
	TotalShots       int    `json:"totalShots"`
	RelativeToPar    int    `json:"relativeToPar"`
	Position         int    `json:"position"`
	Points           int    `json:"points"`
}

func (c *Client) UpdateScore(ctx context.Context, participantID, hole, shots int) (scorecard.Participant, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	body, err := sonic.Marshal(scoreWriteRequest{ParticipantID: participantID, Hole: hole, Shots: shots})
	if err != nil {
		return scorecard.Participant{}, crerr.Wrap(err, "marshal score write")
	}
	_, _ = buf.Write(body)

	data, err := c.do(ctx, fasthttp.MethodPut, "/v1/scores", buf.B)
	if err != nil {
		return scorecard.Participant{}, err
	}

	var payload participantPayload
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return scorecard.Participant{}, crerr.Wrap(err, "decode participant payload")
	}
	return participantFromPayload(payload), nil
}

func (c *Client) GetParticipant(ctx context.Context, participantID int) (scorecard.Participant, error) {
	data, err := c.do(ctx, fasthttp.MethodGet, fmt.Sprintf("/v1/participants/%d", participantID), nil)
	if err != nil {
		return scorecard.Participant{}, err
	}

	var payload participantPayload
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return scorecard.Participant{}, crerr.Wrap(err, "decode participant payload")
	}
	return participantFromPayload(payload), nil
}

func (c *Client) GetLeaderboard(ctx context.Context, competitionID int) ([]leaderboard.Entry, error) {
	data, err := c.do(ctx, fasthttp.MethodGet, fmt.Sprintf("/v1/competitions/%d/leaderboard", competitionID), nil)
	if err != nil {
		return nil, err
	}

	var payload leaderboardPayload
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode leaderboard payload")
	}

	out := make([]leaderboard.Entry, 0, len(payload.Entries))
	for _, row := range payload.Entries {
		entry := leaderboard.Entry{
			ParticipantID: row.ParticipantID,
			DisplayName:   row.DisplayName,
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			PositionName:  row.PositionName,
			HolesPlayed:   row.HolesPlayed,
			TotalShots:    row.TotalShots,
			RelativeToPar: row.RelativeToPar,
			GaveUp:        row.GaveUp,
		}
		if row.NetTotalShots != nil && row.NetRelativeToPar != nil {
			entry.Net = &leaderboard.NetScore{
				TotalShots:    *row.NetTotalShots,
				RelativeToPar: *row.NetRelativeToPar,
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (c *Client) GetTeamLeaderboard(ctx context.Context, competitionID int) ([]leaderboard.TeamResult, error) {
	data, err := c.do(ctx, fasthttp.MethodGet, fmt.Sprintf("/v1/competitions/%d/team-leaderboard", competitionID), nil)
	if err != nil {
		return nil, err
	}

	var payload []teamResultPayload
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode team leaderboard payload")
	}

	out := make([]leaderboard.TeamResult, 0, len(payload))
	for _, row := range payload {
		out = append(out, leaderboard.TeamResult{
			TeamID:           row.TeamID,
			TeamName:         row.TeamName,
			ParticipantCount: row.ParticipantCount,
			TotalShots:       row.TotalShots,
			RelativeToPar:    row.RelativeToPar,
			Position:         row.Position,
			Points:           row.Points,
		})
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, crerr.New("score api base url is not configured")
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "score api circuit breaker rejected request", "state", c.breaker.State())
			return nil, crerr.Mark(crerr.Wrap(err, "score api is temporarily unavailable"), errScoreAPITransient)
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	if len(body) > 0 {
		req.SetBody(body)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		c.recordFailure()
		return nil, crerr.Mark(crerr.Wrapf(err, "score api %s %s", method, path), errScoreAPITransient)
	}

	status := resp.StatusCode()
	data := append([]byte(nil), resp.Body()...)

	if status >= http.StatusInternalServerError {
		c.recordFailure()
		return nil, crerr.Mark(
			crerr.Newf("score api %s %s returned status %d", method, path, status),
			errScoreAPITransient,
		)
	}
	c.recordSuccess()

	var env envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, crerr.Wrapf(err, "decode score api envelope status=%d", status)
	}

	if status >= http.StatusBadRequest {
		return nil, mapStatusError(status, env.Error)
	}
	return env.Data, nil
}

func (c *Client) recordFailure() {
	if c.circuitEnabled {
		c.breaker.RecordFailure()
	}
}

func (c *Client) recordSuccess() {
	if c.circuitEnabled {
		c.breaker.RecordSuccess()
	}
}

// mapStatusError translates server rejections into the usecase sentinels the
// sync engine keys its retry decision on.
func mapStatusError(status int, body *errorBody) error {
	message := ""
	if body != nil {
		message = body.Message
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", usecase.ErrLocked, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", usecase.ErrNotFound, message)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", usecase.ErrUnauthorized, message)
	default:
		return crerr.Mark(
			crerr.Newf("score api returned status %d: %s", status, message),
			errScoreAPITransient,
		)
	}
}

func participantFromPayload(payload participantPayload) scorecard.Participant {
	return scorecard.Participant{
		ID:             payload.ID,
		CompetitionID:  payload.CompetitionID,
		TeamID:         payload.TeamID,
		TeamName:       payload.TeamName,
		PositionName:   payload.PositionName,
		DisplayName:    payload.DisplayName,
		IsLocked:       payload.IsLocked,
		HandicapIndex:  payload.HandicapIndex,
		CourseHandicap: payload.CourseHandicap,
		Scores:         payload.Scores,
		UpdatedAt:      payload.UpdatedAt,
	}
}
