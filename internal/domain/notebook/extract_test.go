package notebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulto-app/pulto/backend/internal/shared/types"
)

func TestContractScanner(t *testing.T) {
	t.Run("strips comment prefixes", func(t *testing.T) {
		fields := scanContract("# type: line\n#   x: [1, 2]\ny: [3, 4]\n")
		assert.Equal(t, "line", fields["type"])
		assert.Equal(t, "[1, 2]", fields["x"])
		assert.Equal(t, "[3, 4]", fields["y"])
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		fields := scanContract("# title: first\n# title: second\n")
		assert.Equal(t, "first", fields["title"])
	})

	t.Run("ignores unrecognized lines", func(t *testing.T) {
		fields := scanContract("import matplotlib.pyplot as plt\nplt.plot(x, y)\nfoo: bar\n")
		assert.Empty(t, fields)
	})
}

func TestExtractChart(t *testing.T) {
	t.Run("tier 1 contract", func(t *testing.T) {
		source := "# type: scatter\n# title: Test\n# xlabel: a\n# ylabel: b\n" +
			"# color: red\n# style: --\n# x: [1, 2.5, 3]\n# y: [4, 5, 6]\n"
		p := ExtractChart(source)
		require.NotNil(t, p)
		assert.Equal(t, "scatter", p.ChartType)
		assert.Equal(t, "Test", p.Title)
		assert.Equal(t, "red", p.Color)
		assert.Equal(t, "--", p.Style)
		assert.Equal(t, []float64{1, 2.5, 3}, p.XData)
		assert.Equal(t, []float64{4, 5, 6}, p.YData)
	})

	t.Run("tier 1 without comment markers", func(t *testing.T) {
		p := ExtractChart("type: line\nx: [1,2,3]\ny: [4,5,6]\n")
		assert.Equal(t, "line", p.ChartType)
		assert.Equal(t, []float64{1, 2, 3}, p.XData)
		assert.Equal(t, []float64{4, 5, 6}, p.YData)
	})

	t.Run("tier 2 assignments", func(t *testing.T) {
		p := ExtractChart("x = [1,2,3]\ny = [4,5,6]\n")
		assert.Equal(t, []float64{1, 2, 3}, p.XData)
		assert.Equal(t, []float64{4, 5, 6}, p.YData)
	})

	t.Run("tier 2 call arguments and kwargs", func(t *testing.T) {
		p := ExtractChart("plt.plot([10, 20], [30, 40], color='green', linestyle=':')\n")
		assert.Equal(t, []float64{10, 20}, p.XData)
		assert.Equal(t, []float64{30, 40}, p.YData)
		assert.Equal(t, "green", p.Color)
		assert.Equal(t, ":", p.Style)
	})

	t.Run("tier 2 needs two numeric lists", func(t *testing.T) {
		p := ExtractChart("x = [1,2,3]\nprint(x)\n")
		// Falls through to the placeholder
		assert.Equal(t, placeholderChart(), p)
	})

	t.Run("placeholder on empty source", func(t *testing.T) {
		p := ExtractChart("nothing to see here")
		require.NotNil(t, p)
		assert.NotEmpty(t, p.XData)
		assert.NotEmpty(t, p.YData)
	})
}

func TestExtractTable(t *testing.T) {
	t.Run("tier 1 contract", func(t *testing.T) {
		source := "# columns: [\"name\", \"age\"]\n# dtypes: name:str, age:int\n" +
			"# rows: [[\"alice\", \"30\"], [\"bob\", \"25\"]]\n"
		p := ExtractTable(source)
		assert.Equal(t, []string{"name", "age"}, p.Columns)
		assert.Equal(t, [][]string{{"alice", "30"}, {"bob", "25"}}, p.Rows)
		assert.Equal(t, types.ColumnInt, p.DataTypes["age"])
		assert.Equal(t, types.ColumnString, p.DataTypes["name"])
	})

	t.Run("tier 2 column dictionary", func(t *testing.T) {
		source := "data = {'month': ['Jan', 'Feb'], 'sales': [1000, 1200], 'rate': [1.5, 2.5]}\n"
		p := ExtractTable(source)
		assert.Equal(t, []string{"month", "sales", "rate"}, p.Columns)
		assert.Equal(t, [][]string{{"Jan", "1000", "1.5"}, {"Feb", "1200", "2.5"}}, p.Rows)
		assert.Equal(t, types.ColumnString, p.DataTypes["month"])
		assert.Equal(t, types.ColumnInt, p.DataTypes["sales"])
		assert.Equal(t, types.ColumnFloat, p.DataTypes["rate"])
	})

	t.Run("placeholder", func(t *testing.T) {
		p := ExtractTable("no tabular data")
		assert.NotEmpty(t, p.Columns)
		assert.NotEmpty(t, p.Rows)
	})
}

func TestExtractPointCloud(t *testing.T) {
	t.Run("tier 1 contract recomputes total", func(t *testing.T) {
		source := "# title: Cloud\n# demo: sphere\n# total: 99\n" +
			"# points: [[0, 0, 0, 0.5], [1, 2, 3]]\n"
		p := ExtractPointCloud(source)
		assert.Equal(t, "Cloud", p.Title)
		assert.Equal(t, "sphere", p.DemoType)
		require.Len(t, p.Points, 2)
		assert.Equal(t, 2, p.TotalPoints)
		require.NotNil(t, p.Points[0].Intensity)
		assert.Equal(t, 0.5, *p.Points[0].Intensity)
		assert.Nil(t, p.Points[1].Intensity)
	})

	t.Run("tier 2 nested literal", func(t *testing.T) {
		p := ExtractPointCloud("pts = np.array([[0, 0, 1], [1, 1, 0]])\n")
		assert.Equal(t, 2, p.TotalPoints)
		assert.Equal(t, 1.0, p.Points[0].Z)
	})

	t.Run("placeholder keeps invariant", func(t *testing.T) {
		p := ExtractPointCloud("")
		assert.Equal(t, len(p.Points), p.TotalPoints)
		assert.NotEmpty(t, p.Points)
	})
}

func TestExtractVolume(t *testing.T) {
	t.Run("tier 1 contract", func(t *testing.T) {
		p := ExtractVolume("# title: CT\n# dims: [64, 64, 32]\n# spacing: [1, 1, 2]\n# channel: density\n")
		assert.Equal(t, []int{64, 64, 32}, p.Dims)
		assert.Equal(t, []float64{1, 1, 2}, p.Spacing)
		assert.Equal(t, "density", p.Channel)
	})

	t.Run("tier 2 shape tuple", func(t *testing.T) {
		p := ExtractVolume("volume = np.zeros((8, 16, 4))\n")
		assert.Equal(t, []int{8, 16, 4}, p.Dims)
	})
}

func TestExtractModel3D(t *testing.T) {
	t.Run("tier 1 contract", func(t *testing.T) {
		p := ExtractModel3D("# title: Engine\n# model: engine.usdz\n# format: usdz\n# scale: 2.5\n")
		assert.Equal(t, "engine.usdz", p.ModelName)
		assert.Equal(t, "usdz", p.Format)
		assert.Equal(t, 2.5, p.Scale)
	})

	t.Run("tier 2 asset path", func(t *testing.T) {
		p := ExtractModel3D("scene.load('models/teapot.obj')\n")
		assert.Equal(t, "models/teapot.obj", p.ModelName)
		assert.Equal(t, "obj", p.Format)
	})
}

func TestValueGrammars(t *testing.T) {
	t.Run("bracket splitting respects nesting and quotes", func(t *testing.T) {
		elems, ok := splitBracketList(`[[1, 2], "a, b", [3]]`)
		require.True(t, ok)
		assert.Equal(t, []string{"[1, 2]", `"a, b"`, "[3]"}, elems)
	})

	t.Run("empty list", func(t *testing.T) {
		values, ok := parseNumberList("[]")
		require.True(t, ok)
		assert.Empty(t, values)
	})

	t.Run("malformed lists rejected", func(t *testing.T) {
		_, ok := parseNumberList("[1, 2")
		assert.False(t, ok)
		_, ok = parseNumberList("[1, two]")
		assert.False(t, ok)
	})

	t.Run("type map", func(t *testing.T) {
		dtypes, ok := parseTypeMap("a:int, b:float, c:str")
		require.True(t, ok)
		assert.Equal(t, types.ColumnInt, dtypes["a"])
		assert.Equal(t, types.ColumnFloat, dtypes["b"])
		assert.Equal(t, types.ColumnString, dtypes["c"])

		_, ok = parseTypeMap("a:bogus")
		assert.False(t, ok)
	})
}
