package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadict/dataset"
	"datadict/primitive"
)

// positionQuestion builds the categorical fixture shared across the
// package tests.
func positionQuestion(t *testing.T) *Question {
	t.Helper()
	q, err := New(Params{
		Name:        "position",
		Description: "Where the player can normally be found on the ice",
		Response:    ResponseCategorical,
		Order: []primitive.Value{
			primitive.Text("Striker"),
			primitive.Text("D-man"),
			primitive.Text("Goalie"),
		},
	})
	require.NoError(t, err)
	return q
}

func positionColumn() *dataset.Column {
	return dataset.Strings("position", "Striker", "D-man", "D-man", "Goalie")
}

// captainQuestion is the boolean fixture, with an undecided marker the
// roster still carries for some players.
func captainQuestion(t *testing.T) *Question {
	t.Helper()
	q, err := New(Params{
		Name:        "team_captain",
		Description: "Has the player been given a C or AC?",
		Response:    ResponseBool,
		Order: []primitive.Value{
			primitive.Text("True"),
			primitive.Text("False"),
		},
		Ambiguous: []primitive.Value{primitive.Text("TBD")},
	})
	require.NoError(t, err)
	return q
}

func captainColumn() *dataset.Column {
	return dataset.Strings("team_captain", "TBD", "True", "True", "False")
}

// yearsQuestion is the integer-coded categorical fixture.
func yearsQuestion(t *testing.T) *Question {
	t.Helper()
	q, err := New(Params{
		Name:        "years_on_team",
		Description: "How many years the player has been on the SMH roster",
		Response:    ResponseCategorical,
		Kind:        primitive.KindInt,
		Order: []primitive.Value{
			primitive.Int(1),
			primitive.Int(2),
			primitive.Int(4),
		},
	})
	require.NoError(t, err)
	return q
}

// goalsQuestion is the continuous fixture with inclusive limits.
func goalsQuestion(t *testing.T) *Question {
	t.Helper()
	q, err := New(Params{
		Name:        "goals_per_season",
		Description: "Goals scored over a regular season",
		Response:    ResponseContinuous,
		Lower:       primitive.Int(1),
		Upper:       primitive.Int(5),
	})
	require.NoError(t, err)
	return q
}

func TestNew_FreeDefaults(t *testing.T) {
	q, err := New(Params{
		Name:        "player_name",
		Description: "The name of the player",
	})
	require.NoError(t, err)

	assert.Equal(t, ResponseFree, q.Response)
	assert.Equal(t, primitive.KindText, q.Kind)
	assert.Equal(t, "Player Name", q.CleanName)
	assert.True(t, q.RefValue.IsNull())
	assert.Empty(t, q.Order)
	assert.Zero(t, q.Provenance().Len())

	// the standard missing vocabulary is on by default
	assert.Equal(t, 7, q.Placeholders.Missing.Len())
	assert.True(t, q.Placeholders.Missing.Contains(primitive.Text("not applicable")))
	assert.True(t, q.Placeholders.Missing.Contains(primitive.Text("missing: not provided")))
}

func TestNew_ExplicitMissing(t *testing.T) {
	q, err := New(Params{
		Name:        "player_name",
		Description: "The name of the player",
		Missing:     []primitive.Value{primitive.Text("TBD")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Placeholders.Missing.Len())
	assert.True(t, q.Placeholders.Missing.Contains(primitive.Text("TBD")))

	// an empty non-nil slice really means no missing vocabulary
	q, err = New(Params{
		Name:        "player_name",
		Description: "The name of the player",
		Missing:     []primitive.Value{},
	})
	require.NoError(t, err)
	assert.Zero(t, q.Placeholders.Missing.Len())
}

func TestNew_RequiredFields(t *testing.T) {
	_, err := New(Params{Description: "no name"})
	assert.ErrorIs(t, err, ErrInvalidSchema)

	_, err = New(Params{Name: "position"})
	assert.ErrorIs(t, err, ErrInvalidSchema)

	_, err = New(Params{Name: "position", Description: strings.Repeat("x", 81)})
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestNew_CategoricalNeedsOrder(t *testing.T) {
	_, err := New(Params{
		Name:        "position",
		Description: "Where the player can normally be found on the ice",
		Response:    ResponseCategorical,
	})
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestNew_BoolDefaults(t *testing.T) {
	q, err := New(Params{
		Name:        "team_captain",
		Description: "Has the player been given a C or AC?",
		Response:    ResponseBool,
	})
	require.NoError(t, err)

	assert.Equal(t, primitive.KindBool, q.Kind)
	assert.Equal(t, BoolFormat{True: "true", False: "false"}, q.Format)
	require.Len(t, q.Order, 2)
	assert.Equal(t, "true", q.Order[0].String())
	assert.Equal(t, "false", q.Order[1].String())
	assert.Equal(t, "true", q.RefValue.String())
}

func TestNew_BoolFormatFromOrder(t *testing.T) {
	// tokens land on their vocabulary side regardless of position
	q, err := New(Params{
		Name:        "team_captain",
		Description: "Has the player been given a C or AC?",
		Response:    ResponseBool,
		Order: []primitive.Value{
			primitive.Text("False"),
			primitive.Text("True"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, BoolFormat{True: "True", False: "False"}, q.Format)
}

func TestNew_BoolRejectsOtherKinds(t *testing.T) {
	_, err := New(Params{
		Name:        "team_captain",
		Description: "Has the player been given a C or AC?",
		Response:    ResponseBool,
		Kind:        primitive.KindInt,
	})
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestNew_AmbiguousLeavesOrder(t *testing.T) {
	q := captainQuestion(t)
	require.Len(t, q.Order, 2)
	assert.Equal(t, "True", q.Order[0].String())
	assert.Equal(t, "False", q.Order[1].String())
	assert.True(t, q.Placeholders.Ambiguous.Contains(primitive.Text("TBD")))
}

func TestNew_ContinuousKind(t *testing.T) {
	q := goalsQuestion(t)
	assert.Equal(t, primitive.KindFloat, q.Kind)

	_, err := New(Params{
		Name:        "goals_per_season",
		Description: "Goals scored over a regular season",
		Response:    ResponseContinuous,
		Kind:        primitive.KindText,
	})
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestNew_LimitChecks(t *testing.T) {
	_, err := New(Params{
		Name:        "goals_per_season",
		Description: "Goals scored over a regular season",
		Response:    ResponseContinuous,
		Lower:       primitive.Int(5),
		Upper:       primitive.Int(1),
	})
	assert.ErrorIs(t, err, ErrInvalidSchema)

	_, err = New(Params{
		Name:        "goals_per_season",
		Description: "Goals scored over a regular season",
		Response:    ResponseContinuous,
		Lower:       primitive.Text("one"),
	})
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestNew_ExtremesAndRefDefaults(t *testing.T) {
	q := positionQuestion(t)
	require.Len(t, q.Extremes, 2)
	assert.Equal(t, "Striker", q.Extremes[0].String())
	assert.Equal(t, "Goalie", q.Extremes[1].String())
	assert.Equal(t, "Striker", q.RefValue.String())
}

func TestNew_ExtremesAndRefOverrides(t *testing.T) {
	q, err := New(Params{
		Name:        "position",
		Description: "Where the player can normally be found on the ice",
		Response:    ResponseCategorical,
		Order: []primitive.Value{
			primitive.Text("Striker"),
			primitive.Text("D-man"),
			primitive.Text("Goalie"),
		},
		Extremes: []primitive.Value{primitive.Text("Goalie"), primitive.Text("Striker")},
		RefValue: primitive.Text("D-man"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Goalie", q.Extremes[0].String())
	assert.Equal(t, "D-man", q.RefValue.String())
}

func TestNew_NumericChecks(t *testing.T) {
	_, err := New(Params{
		Name:            "position",
		Description:     "Where the player can normally be found on the ice",
		Response:        ResponseCategorical,
		Order:           []primitive.Value{primitive.Text("Striker")},
		FrequencyCutoff: primitive.Text("often"),
	})
	assert.ErrorIs(t, err, ErrInvalidSchema)

	_, err = New(Params{
		Name:        "player_name",
		Description: "The name of the player",
		SigFigs:     -1,
	})
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestQuestion_String(t *testing.T) {
	q := positionQuestion(t)
	assert.Equal(t,
		"position (categorical)\n\tWhere the player can normally be found on the ice",
		q.String())
}

func TestQuestion_CasterHonorsPlaceholders(t *testing.T) {
	q := captainQuestion(t)
	c := q.Caster()

	r := c.Cast(primitive.Text("TBD"))
	assert.Equal(t, primitive.Passthrough, r.Class)

	r = c.Cast(primitive.Text("True"))
	require.Equal(t, primitive.Coerced, r.Class)
	truth, ok := r.Value.AsBool()
	assert.True(t, ok)
	assert.True(t, truth)
}

func TestQuestion_WriteProvenance(t *testing.T) {
	q := positionQuestion(t)
	q.Check(positionColumn())

	records := q.WriteProvenance()
	require.Len(t, records, 3)

	// the export itself is the closing entry
	last := records[2]
	assert.Equal(t, "Write Log", last["command"])
	assert.Equal(t, "record", last["category"])
	assert.Equal(t, "position", last["column"])
	assert.NotEmpty(t, last["id"])
	assert.NotEmpty(t, last["timestamp"])
}
