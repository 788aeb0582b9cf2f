package climax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleLine(t *testing.T) {
	points, err := Parse(strings.NewReader("45 45 v intro\n"))
	require.NoError(t, err)
	require.Len(t, points, 1)

	assert.Equal(t, 45.0, points[0].Time)
	assert.Equal(t, TypeVoice, points[0].Type)
	assert.Equal(t, "intro", points[0].Description)
}

func TestParse_TabDelimited(t *testing.T) {
	// Audacity exports tab-delimited labels with start and end times.
	input := "12.500\t12.500\tm chorus hits hard\n130.25\t131.00\tv outro speech\n"

	points, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, 12.5, points[0].Time)
	assert.Equal(t, TypeMusic, points[0].Type)
	assert.Equal(t, "chorus hits hard", points[0].Description)

	assert.Equal(t, 130.25, points[1].Time)
	assert.Equal(t, TypeVoice, points[1].Type)
	assert.Equal(t, "outro speech", points[1].Description)
}

func TestParse_SkipsBlankAndComments(t *testing.T) {
	input := "# climax list\n\n10 10 m first\n\n# another comment\n20 20 v second\n"

	points, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestParse_EmptyDescription(t *testing.T) {
	points, err := Parse(strings.NewReader("10 10 m\n"))
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Empty(t, points[0].Description)
}

func TestParse_MalformedLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{name: "too few fields", input: "10 10\n", line: 1},
		{name: "bad timestamp", input: "abc 10 m intro\n", line: 1},
		{name: "negative timestamp", input: "-5 10 m intro\n", line: 1},
		{name: "unknown type", input: "10 10 x intro\n", line: 1},
		{name: "later line reported", input: "10 10 m ok\n20 20 q broken\n", line: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.line, parseErr.Line)
		})
	}
}

func TestWriteLabels_RoundTrip(t *testing.T) {
	points := []Point{
		{Time: 30, Type: TypeMusic, Description: "drop"},
		{Time: 95.5, Type: TypeVoice, Description: "spoken bridge"},
	}

	var sb strings.Builder
	require.NoError(t, WriteLabels(&sb, points))

	parsed, err := Parse(strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	for i := range points {
		assert.InDelta(t, points[i].Time, parsed[i].Time, 0.001)
		assert.Equal(t, points[i].Type, parsed[i].Type)
		assert.Equal(t, points[i].Description, parsed[i].Description)
	}
}
