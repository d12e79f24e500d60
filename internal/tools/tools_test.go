package tools_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/mdm-intent-bridge/internal/mdm"
	"github.com/Vovarama1992/mdm-intent-bridge/internal/mdm/mdmtest"
	"github.com/Vovarama1992/mdm-intent-bridge/internal/tools"
)

const auth = "Bearer X"

var validArgs = map[string]string{
	"validate":  `{"payload":{"table":"supplier_address"}}`,
	"create_cr": `{"domain":"supplier","table":"supplier_address","operation":"UPDATE","filter":{"supplier_id":1},"proposed_changes":{"city":"New City"}}`,
	"status":    `{"id":"cr-1"}`,
}

func newSet(t *testing.T) (*tools.Set, *mdmtest.Server) {
	t.Helper()
	srv := mdmtest.NewServer()
	t.Cleanup(srv.Close)
	return tools.NewSet(mdm.NewClient(srv.URL, nil)), srv
}

func TestSet_OrderAndSpecs(t *testing.T) {
	set, _ := newSet(t)

	var names []string
	for _, spec := range set.Specs() {
		names = append(names, spec.Name)
		require.NotEmpty(t, spec.Description)
		require.NotNil(t, spec.Parameters)
	}
	require.Equal(t, []string{"validate", "create_cr", "status"}, names)

	_, ok := set.Get("create_cr")
	require.True(t, ok)
	_, ok = set.Get("apply")
	require.False(t, ok)
}

func TestTools_Non2xxBecomesSentinel(t *testing.T) {
	set, srv := newSet(t)
	srv.FailWith(http.StatusInternalServerError)

	for _, tool := range set.Tools() {
		out := tool.Invoke(context.Background(), json.RawMessage(validArgs[tool.Name()]), auth)
		require.True(t, strings.HasPrefix(out, tool.Name()+"_error: "), out)
		require.Contains(t, out, "500")
		require.True(t, tools.IsError(out))
	}
}

func TestTools_TransportFailureBecomesSentinel(t *testing.T) {
	srv := mdmtest.NewServer()
	url := srv.URL
	srv.Close()

	set := tools.NewSet(mdm.NewClient(url, nil))
	for _, tool := range set.Tools() {
		out := tool.Invoke(context.Background(), json.RawMessage(validArgs[tool.Name()]), auth)
		require.True(t, strings.HasPrefix(out, tool.Name()+"_error: "), out)
	}
}

type blockingBackend struct{}

func (blockingBackend) Validate(ctx context.Context, _ string, _ json.RawMessage) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blockingBackend) CreateCR(ctx context.Context, _ string, _ mdm.ChangeRequestDraft) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blockingBackend) Status(ctx context.Context, _ string, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestTools_TimeoutIsBounded(t *testing.T) {
	set := tools.NewSet(blockingBackend{}).WithTimeout(20 * time.Millisecond)

	for _, tool := range set.Tools() {
		started := time.Now()
		out := tool.Invoke(context.Background(), json.RawMessage(validArgs[tool.Name()]), auth)
		require.Less(t, time.Since(started), 2*time.Second)
		require.Equal(t, tool.Name()+"_error: "+context.DeadlineExceeded.Error(), out)
	}
}

func TestCreateCR_DryRunDefaultsToTrue(t *testing.T) {
	set, srv := newSet(t)

	out := set.CreateCR.Invoke(context.Background(), json.RawMessage(validArgs["create_cr"]), auth)
	require.False(t, tools.IsError(out), out)
	require.NotEmpty(t, mdm.ParseCRID(out))

	out = set.CreateCR.Invoke(context.Background(),
		json.RawMessage(`{"domain":"supplier","table":"supplier","operation":"delete","dryRun":false}`), auth)
	require.False(t, tools.IsError(out), out)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	require.Equal(t, "dryRun=true", reqs[0].Query)
	require.Equal(t, "dryRun=false", reqs[1].Query)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(reqs[1].Body), &body))
	require.Equal(t, "DELETE", body["operation"])
	require.Equal(t, map[string]any{}, body["filter"])
}

func TestCreateCR_BadArgumentsAreRetryCues(t *testing.T) {
	set, srv := newSet(t)

	cases := []string{
		`not json`,
		`{"domain":"supplier","operation":"UPDATE"}`,
		`{"domain":"supplier","table":"t","operation":"MERGE"}`,
		`{"domain":"supplier","table":"t","operation":"UPDATE","dryRun":"yes"}`,
	}
	for _, args := range cases {
		out := set.CreateCR.Invoke(context.Background(), json.RawMessage(args), auth)
		require.True(t, strings.HasPrefix(out, "create_cr_error: invalid arguments: "), out)
		require.Contains(t, out, "retry")
	}
	require.Empty(t, srv.Requests(), "malformed arguments must not reach the API")
}

func TestValidate_PayloadWrapperIsOptional(t *testing.T) {
	set, srv := newSet(t)

	set.Validate.Invoke(context.Background(), json.RawMessage(`{"payload":{"a":1}}`), auth)
	set.Validate.Invoke(context.Background(), json.RawMessage(`{"b":2}`), auth)
	out := set.Validate.Invoke(context.Background(), json.RawMessage(`{"payload":[1]}`), auth)
	require.True(t, strings.HasPrefix(out, "validate_error: invalid arguments"), out)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	require.JSONEq(t, `{"a":1}`, reqs[0].Body)
	require.JSONEq(t, `{"b":2}`, reqs[1].Body)
}

func TestStatus_RequiresID(t *testing.T) {
	set, srv := newSet(t)

	out := set.Status.Invoke(context.Background(), json.RawMessage(`{"id":" "}`), auth)
	require.True(t, strings.HasPrefix(out, "status_error: invalid arguments"), out)
	require.Empty(t, srv.Requests())
}

func TestStatus_RepeatedLookupIsByteIdentical(t *testing.T) {
	set, _ := newSet(t)

	first := set.Status.Invoke(context.Background(), json.RawMessage(`{"id":"cr-7"}`), auth)
	second := set.Status.Invoke(context.Background(), json.RawMessage(`{"id":"cr-7"}`), auth)
	require.False(t, tools.IsError(first), first)
	require.Equal(t, first, second)
}

func TestTools_ForwardAuthorizationVerbatim(t *testing.T) {
	set, srv := newSet(t)

	for _, tool := range set.Tools() {
		tool.Invoke(context.Background(), json.RawMessage(validArgs[tool.Name()]), auth)
	}

	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	for _, r := range reqs {
		require.Equal(t, auth, r.Authorization, r.Path)
	}
}

func TestIsError(t *testing.T) {
	require.True(t, tools.IsError("status_error: boom"))
	require.True(t, tools.IsError(tools.ErrorResult("validate", context.Canceled)))
	require.False(t, tools.IsError(`{"id":"x","status":"CREATED"}`))
	require.False(t, tools.IsError(`{"message_error: nope"}`))
	require.False(t, tools.IsError(""))
}
