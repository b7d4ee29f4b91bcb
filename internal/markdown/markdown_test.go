package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_Empty(t *testing.T) {
	require.Equal(t, "", Render(""))
}

func TestRender_Blocks(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"h1", "# Title", "<h1>Title</h1>\n"},
		{"h3", "### Third", "<h3>Third</h3>\n"},
		{"h6", "###### Sixth", "<h6>Sixth</h6>\n"},
		{"list", "- a\n- b", "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n"},
		{"quote", "> quoted", "<blockquote>\n<p>quoted</p>\n</blockquote>\n"},
		{"rule", "***", "<hr>\n"},
		{"paragraphs", "one\n\ntwo", "<p>one</p>\n<p>two</p>\n"},
		{"line break", "one\ntwo", "<p>one<br>\ntwo</p>\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Render(tc.in))
		})
	}
}

func TestRender_Inline(t *testing.T) {
	require.Equal(t, "<p><strong>bold</strong></p>\n", Render("**bold**"))
	require.Equal(t, "<p><em>it</em></p>\n", Render("*it*"))
	require.Equal(t, "<p><del>gone</del></p>\n", Render("~~gone~~"))
	require.Equal(t, "<p><code>x := 1</code></p>\n", Render("`x := 1`"))

	both := Render("***both***")
	require.Contains(t, both, "<strong>")
	require.Contains(t, both, "<em>")
}

func TestRender_LinksOpenInNewTab(t *testing.T) {
	out := Render("[docs](https://example.com/a)")
	require.Equal(t, `<p><a href="https://example.com/a" target="_blank" rel="noopener noreferrer">docs</a></p>`+"\n", out)
}

func TestRender_Images(t *testing.T) {
	require.Equal(t, `<p><img src="/dna.png" alt="helix"></p>`+"\n", Render("![helix](/dna.png)"))
}

func TestRender_FencedCodeIsLiteral(t *testing.T) {
	out := Render("```go\nfmt.Println(\"**not bold**\")\n```")
	require.Contains(t, out, `<pre><code class="language-go">`)
	require.Contains(t, out, "**not bold**")
	require.NotContains(t, out, "<strong>")
}

func TestRender_DropsRawHTML(t *testing.T) {
	out := Render("<script>alert(1)</script>")
	require.NotContains(t, out, "<script>")

	out = Render("click <img src=x onerror=alert(1)> here")
	require.NotContains(t, out, "onerror")
}

func TestRender_DropsDangerousLinks(t *testing.T) {
	out := Render("[x](javascript:alert(1))")
	require.NotContains(t, out, "javascript:")
}

func TestRender_Deterministic(t *testing.T) {
	in := "# Hi\n\n- **a**\n- [b](https://b.example)\n\n```\ncode\n```"
	require.Equal(t, Render(in), Render(in))
}
