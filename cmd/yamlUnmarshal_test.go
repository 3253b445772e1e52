package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestYAML_Unmarshal_Success_Dedicated(t *testing.T) {
	var jf jobFile
	data := []byte("harvester: h.py\ndatasetname: /A/B/DQMIO\nistest: true\n")
	require.NoError(t, yamlUnmarshal(data, &jf))
	require.Equal(t, "h.py", jf.Harvester)
	require.Equal(t, "/A/B/DQMIO", jf.DatasetName)
	require.NotNil(t, jf.IsTest)
	require.True(t, *jf.IsTest)
}

func TestYAML_Unmarshal_EmptyDocument(t *testing.T) {
	var jf jobFile
	require.NoError(t, yamlUnmarshal(nil, &jf))
	require.Equal(t, jobFile{}, jf)
}

// TestYAML_Unmarshal_Errors_Dedicated verifies that type mismatches and
// unknown keys are both rejected.
func TestYAML_Unmarshal_Errors_Dedicated(t *testing.T) {
	var jf jobFile
	require.Error(t, yamlUnmarshal([]byte("istest: [1, 2]"), &jf))

	jf = jobFile{}
	err := yamlUnmarshal([]byte("harvester: h.py\nmenmae: typo\n"), &jf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "menmae")
}
