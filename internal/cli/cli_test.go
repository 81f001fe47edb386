package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/shelter-directory/internal/store"
)

const testData = "testdata/facilities.json"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(got))
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "shelters", cmd.Use)

	for _, name := range []string{"validate", "query"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("data"))
}

func TestQuery_TextGolden(t *testing.T) {
	out, err := execute(t, "query", "--data", testData, "--locale", "en", "--sort", "capacity-desc")
	require.NoError(t, err)
	assertGolden(t, "query_en_capacity_desc", out)
}

func TestQuery_VillageFilterGolden(t *testing.T) {
	out, err := execute(t, "query", "--data", testData, "--locale", "zh-Hant", "--village", "豐華里")
	require.NoError(t, err)
	assertGolden(t, "query_zh_village", out)
}

func TestQuery_ListingPageGolden(t *testing.T) {
	out, err := execute(t, "query", "--data", "testdata/cards.html", "--locale", "en")
	require.NoError(t, err)
	assertGolden(t, "query_en_cards", out)
}

func TestValidate_ListingPageGolden(t *testing.T) {
	out, err := execute(t, "validate", "--data", "testdata/cards.html")
	require.NoError(t, err)
	assertGolden(t, "validate_cards", out)
}

func TestQuery_NoResults(t *testing.T) {
	out, err := execute(t, "query", "--data", testData, "--locale", "en", "--search", "nowhere")
	require.NoError(t, err)
	assert.Equal(t, "showing 0 of 3 facilities\nNo facilities match your search.\n", out)
}

func TestQuery_HTML(t *testing.T) {
	out, err := execute(t, "query", "--data", testData, "--format", "html", "--division", "善化分局")
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte(`class="facility-card"`)))
	assert.Contains(t, out, `data-slug="facility-001"`)
	assert.NotContains(t, out, "facility-003")
}

func TestQuery_InvalidFormat(t *testing.T) {
	_, err := execute(t, "query", "--data", testData, "--format", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestQuery_UnavailableCollection(t *testing.T) {
	_, err := execute(t, "query", "--data", "testdata/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch testdata/missing.json")
}

func TestValidate_Clean(t *testing.T) {
	out, err := execute(t, "validate", "--data", testData)
	require.NoError(t, err)
	assert.Equal(t, "source: testdata/facilities.json\nrecords: 3\ndefects: 0\nok\n", out)
}

func TestValidate_DefectsGolden(t *testing.T) {
	out, err := execute(t, "validate", "--data", "testdata/defects.json")
	require.NoError(t, err)
	assertGolden(t, "validate_defects", out)
}

func TestValidate_RejectedPayload(t *testing.T) {
	out, err := execute(t, "validate", "--data", "testdata/duplicate.json")
	require.ErrorIs(t, err, store.ErrDuplicateSlug)
	assert.Contains(t, out, "rejected: ")
	assert.Contains(t, out, "records: 0\n")
}

func TestValidate_DataFromEnvironment(t *testing.T) {
	t.Setenv("DATA_SOURCE", testData)
	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "records: 3\n")
}

func TestQueryOptions_Query(t *testing.T) {
	q := (&QueryOptions{Search: " hall ", Village: "East", Sort: "capacity-asc"}).query()
	assert.Equal(t, " hall ", q.Search)
	assert.Equal(t, "East", q.Filters["village"])
	_, hasDivision := q.Filters["division"]
	assert.False(t, hasDivision)
	assert.Equal(t, "capacity-asc", string(q.Sort))
}
