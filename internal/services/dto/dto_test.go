package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_AcceptsNumberAndString(t *testing.T) {
	var req UpdateSkillRequest

	require.NoError(t, json.Unmarshal([]byte(`{"id": 3}`), &req))
	assert.Equal(t, 3, req.TargetID())

	require.NoError(t, json.Unmarshal([]byte(`{"id": "12"}`), &req))
	assert.Equal(t, 12, req.TargetID())

	assert.Error(t, json.Unmarshal([]byte(`{"id": "abc"}`), &req))
}

func TestUpdateSkillRequest_ColumnsOnlySupplied(t *testing.T) {
	var req UpdateSkillRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "level": 0}`), &req))

	assert.Equal(t, map[string]interface{}{"level": 0}, req.Columns())

	req = UpdateSkillRequest{ID: 1}
	assert.Empty(t, req.Columns())
}

func TestUpdateBlogPostRequest_IgnoresDate(t *testing.T) {
	var req UpdateBlogPostRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "date": "1999-01-01", "title": "New"}`), &req))

	assert.Equal(t, map[string]interface{}{"title": "New"}, req.Columns())
}
