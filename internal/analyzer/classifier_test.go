package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"navhub/pkg/aiclient"
	"navhub/pkg/domain"
	"navhub/pkg/webmeta"
)

type fakeAI struct {
	reply    string
	err      error
	messages []aiclient.Message
}

func (f *fakeAI) Chat(_ context.Context, messages []aiclient.Message) (string, error) {
	f.messages = messages

	return f.reply, f.err
}

func (f *fakeAI) ChatStream(context.Context, []aiclient.Message) (aiclient.Stream, error) {
	return nil, errors.New("not implemented")
}

// Ensure fakeAI conforms to the Client interface at compile time.
var _ aiclient.Client = (*fakeAI)(nil)

func newTestClassifier(ai aiclient.Client) *service {
	return &service{ai: ai, options: Options{CategoryMatchThreshold: 0.3, MaxTags: 5}}
}

func TestClassify(t *testing.T) {
	info := &webmeta.ExtractedInfo{
		Title:       "GitHub",
		Description: "Where the world builds software",
		Keywords:    []string{"git", "code"},
		PageContent: "GitHub is where over 100 million developers shape the future of software.",
	}
	categories := []domain.Category{
		{Name: "开发工具", Count: 12},
		{Name: "设计工具", Count: 3},
	}

	t.Run("parsesReply", func(t *testing.T) {
		ai := &fakeAI{reply: `{"category": "开发工具", "tags": ["代码托管", "开源"], ` +
			`"description": "全球最大的代码托管平台", "suggestedCategoryIcon": "GitBranch"}`}

		got, err := newTestClassifier(ai).classify(context.Background(), "https://github.com", info, categories)

		require.NoError(t, err)
		require.Equal(t, "开发工具", got.Category)
		require.Equal(t, []string{"代码托管", "开源"}, got.Tags)
		require.Equal(t, "全球最大的代码托管平台", got.Description)
		require.Equal(t, "GitBranch", got.SuggestedIcon)

		require.Len(t, ai.messages, 2)
		require.Equal(t, aiclient.RoleSystem, ai.messages[0].Role)
		require.Contains(t, ai.messages[0].Content, `1. "开发工具" (12个网站)`)
		require.Contains(t, ai.messages[0].Content, `2. "设计工具" (3个网站)`)
		require.Equal(t, aiclient.RoleUser, ai.messages[1].Role)
		require.Contains(t, ai.messages[1].Content, "网站URL: https://github.com")
		require.Contains(t, ai.messages[1].Content, "关键词: git, code")
		require.Contains(t, ai.messages[1].Content, "页面主要内容: GitHub is where")
	})

	t.Run("stripsCodeFences", func(t *testing.T) {
		ai := &fakeAI{reply: "```json\n{\"category\": \"开发工具\", \"tags\": [\"代码\"], " +
			"\"description\": \"d\", \"suggestedCategoryIcon\": \"Code\"}\n```"}

		got, err := newTestClassifier(ai).classify(context.Background(), "https://github.com", info, categories)

		require.NoError(t, err)
		require.Equal(t, "开发工具", got.Category)
	})

	t.Run("snapsUnknownCategoryOntoExisting", func(t *testing.T) {
		ai := &fakeAI{reply: `{"category": "编程开发", "tags": ["代码"], "description": "d"}`}

		got, err := newTestClassifier(ai).classify(context.Background(), "https://github.com", info, categories)

		require.NoError(t, err)
		require.Equal(t, "开发工具", got.Category)
	})

	t.Run("keepsTrulyNewCategory", func(t *testing.T) {
		ai := &fakeAI{reply: `{"category": "天气预报", "tags": ["天气"], "description": "d"}`}

		got, err := newTestClassifier(ai).classify(context.Background(), "https://weather.example", info, categories)

		require.NoError(t, err)
		require.Equal(t, "天气预报", got.Category)
	})

	t.Run("clampsTags", func(t *testing.T) {
		ai := &fakeAI{reply: `{"category": "开发工具", "tags": ["a", "b", "c", "d", "e", "f", "g"], "description": "d"}`}

		got, err := newTestClassifier(ai).classify(context.Background(), "https://github.com", info, categories)

		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c", "d", "e"}, got.Tags)
	})

	t.Run("defaultsDescription", func(t *testing.T) {
		ai := &fakeAI{reply: `{"category": "开发工具", "tags": ["代码"]}`}

		got, err := newTestClassifier(ai).classify(context.Background(), "https://github.com", info, categories)

		require.NoError(t, err)
		require.Equal(t, "GitHub - 开发工具相关服务", got.Description)
	})

	t.Run("chatError", func(t *testing.T) {
		ai := &fakeAI{err: errors.New("boom")}

		_, err := newTestClassifier(ai).classify(context.Background(), "https://github.com", info, categories)

		require.Error(t, err)
	})

	t.Run("malformedReply", func(t *testing.T) {
		ai := &fakeAI{reply: "抱歉，我无法分析这个网站。"}

		_, err := newTestClassifier(ai).classify(context.Background(), "https://github.com", info, categories)

		require.Error(t, err)
	})

	t.Run("missingCategory", func(t *testing.T) {
		ai := &fakeAI{reply: `{"tags": ["代码"], "description": "d"}`}

		_, err := newTestClassifier(ai).classify(context.Background(), "https://github.com", info, categories)

		require.Error(t, err)
	})

	t.Run("missingTags", func(t *testing.T) {
		ai := &fakeAI{reply: `{"category": "开发工具", "description": "d"}`}

		_, err := newTestClassifier(ai).classify(context.Background(), "https://github.com", info, categories)

		require.Error(t, err)
	})
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "plain", reply: `{"a": 1}`, want: `{"a": 1}`},
		{name: "jsonFence", reply: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bareFence", reply: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "surroundingWhitespace", reply: "  ```json\n{\"a\": 1}\n```  ", want: `{"a": 1}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, stripCodeFences(test.reply))
		})
	}
}
