package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/panelo/internal/model"
)

func testDashboards() []model.Dashboard {
	return []model.Dashboard{
		{
			ID:   "default",
			Name: "Main Dashboard",
			Boxes: []model.Box{
				{ID: "b1", URL: "https://github.com", Title: "GitHub", X: model.Int(0), Y: model.Int(0), Width: model.Int(6), Height: model.Int(4)},
				{ID: "b2", URL: "https://example.com", X: model.Int(2), Y: model.Int(model.AppendRow), Width: model.Int(4), Height: model.Int(4)},
			},
		},
		{
			ID:    "01HX",
			Name:  "Work",
			Boxes: []model.Box{},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"plain", "JSON", " yaml ", "ids", "dmenu"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPlain, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewFormatter(t *testing.T) {
	opts := DefaultFormatterOptions()
	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain, opts))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, opts))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML, opts))
	assert.IsType(t, &IDsFormatter{}, NewFormatter(FormatIDs, opts))
	assert.IsType(t, &DmenuFormatter{}, NewFormatter(FormatDmenu, opts))
	assert.IsType(t, &PlainFormatter{}, NewFormatter("unknown", opts))
}

func TestPlainFormatter_Format(t *testing.T) {
	opts := DefaultFormatterOptions()
	opts.ActiveID = "01HX"

	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testDashboards()))

	want := "[1] Main Dashboard (2/15)\n" +
		"    1. GitHub  https://github.com  [0,0 6x4]\n" +
		"    2. https://example.com  https://example.com  [2,end 4x4]\n" +
		"[2] Work (0/15) *\n"
	assert.Equal(t, want, buf.String())
}

func TestPlainFormatter_NoBoxesNoIndex(t *testing.T) {
	opts := FormatterOptions{}

	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testDashboards()))
	assert.Equal(t, "Main Dashboard (2/15)\nWork (0/15)\n", buf.String())
}

func TestPlainFormatter_Template(t *testing.T) {
	opts := FormatterOptions{
		ActiveID: "default",
		Template: "{{.Index}}:{{.Dashboard.Name}}:{{len .Dashboard.Boxes}}{{if .Active}}!{{end}}\n",
	}

	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testDashboards()))
	assert.Equal(t, "1:Main Dashboard:2!\n2:Work:0\n", buf.String())
}

func TestPlainFormatter_InvalidTemplateFallsBack(t *testing.T) {
	opts := FormatterOptions{Template: "{{.Missing"}
	assert.Error(t, ValidateTemplate(opts.Template))

	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testDashboards()[1:]))
	assert.Equal(t, "Work (0/15)\n", buf.String())
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(FormatterOptions{}).Format(&buf, testDashboards()))

	var got []model.Dashboard
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testDashboards(), got)
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(FormatterOptions{}).Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONFormatter_FormatBox(t *testing.T) {
	box := model.Box{ID: "b1", URL: "https://github.com"}
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(FormatterOptions{}).FormatBox(&buf, &box))
	assert.JSONEq(t, `{"id":"b1","url":"https://github.com"}`, buf.String())
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(FormatterOptions{}).Format(&buf, testDashboards()))

	assert.Contains(t, buf.String(), "name: Main Dashboard")
	assert.Contains(t, buf.String(), "url: https://github.com")

	var got []model.Dashboard
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testDashboards(), got)
}

func TestIDsFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewIDsFormatter(FormatterOptions{}).Format(&buf, testDashboards()))
	assert.Equal(t, "default\n01HX\n", buf.String())

	buf.Reset()
	require.NoError(t, NewIDsFormatter(FormatterOptions{BoxesOnly: true}).Format(&buf, testDashboards()))
	assert.Equal(t, "b1\nb2\n", buf.String())
}

func TestDmenuFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(DefaultFormatterOptions()).Format(&buf, testDashboards()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1 | Main Dashboard | GitHub | https://github.com", lines[0])
	assert.Equal(t, "2 | Main Dashboard | https://example.com | https://example.com", lines[1])
}

func TestDmenuFormatter_Template(t *testing.T) {
	opts := FormatterOptions{Template: "{{host .Box.URL}} {{title .Box}} {{pos .Box}}"}

	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(opts).Format(&buf, testDashboards()))
	assert.Equal(t, "github.com GitHub 0,0 6x4\nexample.com https://example.com 2,end 4x4\n", buf.String())
}

func TestFormatField(t *testing.T) {
	box := &model.Box{ID: "b1", URL: "https://github.com", Title: "GitHub", X: model.Int(1), Y: model.Int(2)}

	assert.Equal(t, "b1", FormatField(box, "id"))
	assert.Equal(t, "https://github.com", FormatField(box, "URL"))
	assert.Equal(t, "GitHub", FormatField(box, "title"))
	assert.Equal(t, "1,2 4x4", FormatField(box, "pos"))
	assert.Equal(t, "GitHub\nhttps://github.com", FormatField(box, "all"))
	assert.Equal(t, "https://github.com", FormatField(box, "unknown"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 0))
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "he...", truncate("hello world", 5))
	assert.Equal(t, "hel", truncate("hello", 3))
	assert.Equal(t, "日本...", truncate("日本語テキスト", 5))
}
