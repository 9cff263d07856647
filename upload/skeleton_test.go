package upload

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-rii/tiptap/document"
	td "github.com/seo-rii/tiptap/internal/testdoc"
)

func TestInsertSkeleton_ReplacesEmptyParagraph(t *testing.T) {
	st := td.State(td.Doc(td.S.Node("paragraph", nil)), 1)
	sk := InsertSkeleton(st, SkeletonOptions{})
	require.NotNil(t, sk)
	assert.Regexp(t, regexp.MustCompile(`^upload-\d+-[0-9a-z]{8}$`), sk.ID)

	doc := st.Doc()
	require.Equal(t, 2, doc.ChildCount())
	node := doc.Child(0)
	assert.Equal(t, SkeletonNode, node.TypeName())
	assert.Equal(t, "block", node.Attr("kind"))
	assert.Equal(t, 180, node.Attr("height"))
	assert.Equal(t, "paragraph", doc.Child(1).TypeName())
	assert.Equal(t, document.Selection{Kind: document.NodeSelection, Anchor: 0, Head: 1}, st.Selection())
}

func TestInsertSkeleton_At(t *testing.T) {
	st := td.State(td.Doc(td.P("ab"), td.P("cd")), 1)
	at := 4
	sk := InsertSkeleton(st, SkeletonOptions{Kind: KindPDF, At: &at, NoParagraph: true, NoSelect: true})
	require.NotNil(t, sk)

	doc := st.Doc()
	require.Equal(t, 3, doc.ChildCount())
	assert.Equal(t, 420, doc.Child(1).Attr("height"))
	assert.Equal(t, document.Cursor(1), st.Selection())
	pos, ok := sk.Pos()
	require.True(t, ok)
	assert.Equal(t, 4, pos)
}

func TestInsertSkeleton_ClampsHeight(t *testing.T) {
	for _, tt := range []struct {
		height int
		want   int
	}{
		{5000, MaxSkeletonHeight},
		{10, MinSkeletonHeight},
		{-3, MinSkeletonHeight},
		{300, 300},
	} {
		st := td.State(td.Doc(td.P("ab")), 3)
		require.NotNil(t, InsertSkeleton(st, SkeletonOptions{Kind: KindImage, Height: tt.height}))
		assert.Equal(t, tt.want, st.Doc().Child(1).Attr("height"), "height %d", tt.height)
	}
}

func TestClampHeightAndDefaults(t *testing.T) {
	assert.Equal(t, 45, ClampHeight(44.6))
	assert.Equal(t, 180, ClampHeight(math.NaN()))
	assert.Equal(t, 56, DefaultHeight(KindFile))
	assert.Equal(t, 420, DefaultHeight(KindEmbed))
	assert.Equal(t, 180, DefaultHeight("video"))
}

func TestSkeleton_SurvivesEditsBefore(t *testing.T) {
	st := td.State(td.Doc(td.P("ab")), 3)
	sk := InsertSkeleton(st, SkeletonOptions{})
	require.NotNil(t, sk)

	require.True(t, st.Dispatch(st.Tx().InsertText(1, "xyz")))
	pos, ok := sk.Pos()
	require.True(t, ok)
	assert.Equal(t, 7, pos)
}

func TestSkeleton_ReplaceWith(t *testing.T) {
	st := td.State(td.Doc(td.P("ab")), 3)
	sk := InsertSkeleton(st, SkeletonOptions{Kind: KindImage})
	require.NotNil(t, sk)

	assert.False(t, sk.ReplaceWith(nil, true))
	require.True(t, sk.ReplaceWith(td.Image(document.Attrs{"src": "x"}), true))
	assert.Equal(t, `doc(paragraph("ab"), image{src=x}, paragraph())`, st.Doc().String())
	assert.Equal(t, document.Selection{Kind: document.NodeSelection, Anchor: 4, Head: 5}, st.Selection())
	assert.False(t, sk.Exists())
	assert.False(t, sk.ReplaceWith(td.Image(nil), true))
}

func TestSkeleton_Remove(t *testing.T) {
	st := td.State(td.Doc(td.P("ab")), 3)
	sk := InsertSkeleton(st, SkeletonOptions{})
	require.NotNil(t, sk)

	require.True(t, sk.Remove())
	assert.Equal(t, `doc(paragraph("ab"))`, st.Doc().String())
	assert.False(t, sk.Remove())
}

func TestSkeleton_RemoveKeepsFilledParagraph(t *testing.T) {
	st := td.State(td.Doc(td.P("ab"), td.P("cd")), 3)
	sk := InsertSkeleton(st, SkeletonOptions{NoParagraph: true})
	require.NotNil(t, sk)

	require.True(t, sk.Remove())
	assert.Equal(t, `doc(paragraph("ab"), paragraph("cd"))`, st.Doc().String())
}
