package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	getOut  *ssm.GetParameterOutput
	getErr  error
	lastIn  *ssm.GetParameterInput
	callCnt int
}

func (f *fakeAPI) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.lastIn = in
	f.callCnt++
	return f.getOut, f.getErr
}

func strPtr(s string) *string { return &s }

func withValue(v string) *fakeAPI {
	return &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name: strPtr("/chirpify/hf-token"), Value: strPtr(v), Type: types.ParameterTypeSecureString,
	}}}
}

func mustNew(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	c, err := New(api)
	require.NoError(t, err)
	return c
}

func TestGetParameter_HappyPath(t *testing.T) {
	api := withValue("hf_abc")
	v, err := mustNew(t, api).GetParameter(context.Background(), " /chirpify/hf-token ")
	require.NoError(t, err)
	require.Equal(t, "hf_abc", v)
	require.Equal(t, "/chirpify/hf-token", *api.lastIn.Name)
	require.True(t, *api.lastIn.WithDecryption)
}

func TestGetParameter_MissingValue(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: strPtr("p")}}}
	_, err := mustNew(t, api).GetParameter(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing value")
}

func TestGetParameter_ApiError(t *testing.T) {
	api := &fakeAPI{getErr: errors.New("ParameterNotFound")}
	_, err := mustNew(t, api).GetParameter(context.Background(), "p")
	require.ErrorContains(t, err, "ParameterNotFound")
}

func TestGetParameter_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).GetParameter(context.Background(), "p")
	require.ErrorContains(t, err, "not initialized")
}

func TestGetParameter_EmptyName(t *testing.T) {
	api := &fakeAPI{}
	_, err := mustNew(t, api).GetParameter(context.Background(), "  ")
	require.ErrorContains(t, err, "required")
	require.Zero(t, api.callCnt)
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.ErrorContains(t, err, "must not be nil")
}

func TestGetToken(t *testing.T) {
	cases := []struct {
		name    string
		stored  string
		want    string
		wantErr string
	}{
		{name: "bare token", stored: "hf_plain\n", want: "hf_plain"},
		{name: "json token", stored: `{"token":"hf_json"}`, want: "hf_json"},
		{name: "json without token", stored: `{"other":"x"}`, wantErr: "token is empty"},
		{name: "malformed json", stored: `{"token`, wantErr: "unmarshal"},
		{name: "blank", stored: "   ", wantErr: "token is empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mustNew(t, withValue(tc.stored)).GetToken(context.Background(), "/chirpify/hf-token")
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
