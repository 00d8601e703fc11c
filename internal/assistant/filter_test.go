package assistant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkerFilter(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []string
		flush  string
	}{
		{
			name:   "plainText",
			chunks: []string{"你好", "，我是导航助手"},
			want:   []string{"你好", "，我是导航助手"},
		},
		{
			name:   "stripsCompleteMarker",
			chunks: []string{"试试 GitHub [RECOMMEND:https://github.com] 吧"},
			want:   []string{"试试 GitHub  吧"},
		},
		{
			name:   "stripsMarkerSplitAcrossChunks",
			chunks: []string{"试试 GitHub [RECO", "MMEND:https://git", "hub.com]", " 吧"},
			want:   []string{"试试 GitHub ", "", "", " 吧"},
		},
		{
			name:   "keepsOrdinaryBrackets",
			chunks: []string{"参考 [文档] 一节"},
			want:   []string{"参考 [文档] 一节"},
		},
		{
			name:   "releasesDivergingPrefix",
			chunks: []string{"[RECO", "RD] 完"},
			want:   []string{"", "[RECORD] 完"},
		},
		{
			name:   "multipleMarkers",
			chunks: []string{"A [RECOMMEND:https://a.example] B [RECOMMEND:https://b.example] C"},
			want:   []string{"A  B  C"},
		},
		{
			name:   "unterminatedMarkerHeldUntilFlush",
			chunks: []string{"结尾 [RECOMMEND:https://a.exa"},
			want:   []string{"结尾 "},
			flush:  "[RECOMMEND:https://a.exa",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var filter markerFilter
			var got []string
			for _, chunk := range test.chunks {
				got = append(got, filter.feed(chunk))
			}
			require.Equal(t, test.want, got)
			require.Equal(t, test.flush, filter.flush())
		})
	}
}
