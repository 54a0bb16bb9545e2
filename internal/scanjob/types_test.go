package scanjob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidate(t *testing.T) {
	require.NoError(t, Request{From: "2021/03", To: "2021/07"}.Validate())
	require.NoError(t, Request{Usernames: []string{"vbechev"}, From: "2021/03", To: "2021/03"}.Validate())
	require.NoError(t, Request{From: "2021/03", To: "2021/07", DryRun: true}.Validate())

	assert.Error(t, Request{DryRun: true}.Validate())

	assert.Error(t, Request{}.Validate())
	assert.Error(t, Request{From: "2021/03"}.Validate())
	assert.Error(t, Request{From: "2021-03", To: "2021-07"}.Validate())
	assert.Error(t, Request{From: "2021/07", To: "2021/03"}.Validate())
}
