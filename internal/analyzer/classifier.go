package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"navhub/pkg/aiclient"
	"navhub/pkg/domain"
	"navhub/pkg/logger"
	"navhub/pkg/webmeta"
)

const (
	// maxPromptContent caps how much page text is handed to the model.
	maxPromptContent = 1000
)

// aiClassification is the JSON shape the model is instructed to return.
type aiClassification struct {
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Description   string   `json:"description"`
	SuggestedIcon string   `json:"suggestedCategoryIcon"`
}

// classify asks the model for a categorization. categories must already be
// ranked by usage so the prompt presents the most relevant choices first.
// Any failure (transport, malformed JSON, missing fields) is returned to the
// caller, which falls back to rule-based classification.
func (s *service) classify(
	ctx context.Context,
	rawURL string,
	info *webmeta.ExtractedInfo,
	categories []domain.Category,
) (Classification, error) {
	reply, err := s.ai.Chat(ctx, []aiclient.Message{
		{Role: aiclient.RoleSystem, Content: classifySystemPrompt(categories)},
		{Role: aiclient.RoleUser, Content: classifyUserPrompt(rawURL, info)},
	})
	if err != nil {
		return Classification{}, fmt.Errorf("could not get chat completion: %w", err)
	}

	var parsed aiClassification
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &parsed); err != nil {
		return Classification{}, fmt.Errorf("could not parse model reply: %w", err)
	}
	if parsed.Category == "" || parsed.Tags == nil {
		return Classification{}, fmt.Errorf("model reply missing category or tags")
	}

	category := s.snapToExistingCategory(ctx, parsed.Category, categories)
	tags := parsed.Tags
	if len(tags) > s.options.MaxTags {
		tags = tags[:s.options.MaxTags]
	}
	description := parsed.Description
	if description == "" {
		description = info.Title + " - " + category + "相关服务"
	}

	return Classification{
		Category:      category,
		Tags:          tags,
		Description:   description,
		SuggestedIcon: parsed.SuggestedIcon,
	}, nil
}

// snapToExistingCategory keeps the model honest: a proposed category that is
// not an existing one gets replaced by the closest existing category when the
// keyword overlap clears the configured threshold.
func (s *service) snapToExistingCategory(ctx context.Context, proposed string, categories []domain.Category) string {
	best, bestScore := "", 0.0
	for _, category := range categories {
		if category.Name == proposed {
			return proposed
		}
		if score := keywordOverlap(proposed, category.Name); score > bestScore {
			best, bestScore = category.Name, score
		}
	}

	if bestScore > s.options.CategoryMatchThreshold {
		logger.Debug(ctx, "snapped model category onto existing one",
			zap.String("proposed", proposed),
			zap.String("existing", best),
			zap.Float64("score", bestScore))

		return best
	}

	return proposed
}

// stripCodeFences unwraps a reply the model wrapped in a markdown code block.
func stripCodeFences(reply string) string {
	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, "```") {
		return reply
	}

	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")

	return strings.TrimSpace(reply)
}

func classifySystemPrompt(categories []domain.Category) string {
	var ranked strings.Builder
	if len(categories) == 0 {
		ranked.WriteString("（暂无分类，可以创建合适的新分类）\n")
	}
	for i, category := range categories {
		fmt.Fprintf(&ranked, "%d. \"%s\" (%d个网站)\n", i+1, category.Name, category.Count)
	}

	return fmt.Sprintf(`你是一个专业的网站分析助手。请分析网站信息并返回JSON格式的结果。

**现有分类列表（按使用频率排序）：**
%s
**分类规则（非常重要）：**
1. 最高优先级：优先从上述现有分类中选择最合适的一个
2. 严格禁止创建与现有分类名称相似或含义重复的新分类
3. 分类匹配指南：
   - 金融相关（股票、交易、投资、理财）→ 优先使用现有的金融类分类
   - 设计相关（UI、界面、原型、视觉）→ 优先使用现有的设计类分类
   - 编程开发相关（代码、技术、软件）→ 优先使用现有的开发类分类
   - 视频、音乐、娱乐相关 → 优先使用现有的娱乐类分类
   - 新闻、资讯相关 → 优先使用现有的资讯类分类
   - 社交、聊天相关 → 优先使用现有的社交类分类
   - 学习、教育相关 → 优先使用现有的学习类分类
   - 其他工具类 → 优先使用现有的工具类分类
4. 只有当网站与所有现有分类都完全不匹配时，才创建新分类

**其他要求：**
- 生成3-5个简洁准确的中文标签
- 生成30-80字的中文网站描述
- 为分类推荐一个图标，从以下选项中选择：Globe, Code, Palette, TrendingUp, Video, Music, BookOpen, MessageCircle, ShoppingBag, Gamepad2, Newspaper, Wrench, GitBranch, Coins, Users, FileText, Smartphone, GraduationCap, Building, PenTool

请只返回以下JSON格式，不要包含任何其他内容：
{"category": "分类名称", "tags": ["标签1", "标签2", "标签3"], "description": "网站描述", "suggestedCategoryIcon": "图标名称"}`, ranked.String())
}

func classifyUserPrompt(rawURL string, info *webmeta.ExtractedInfo) string {
	keywords := "无"
	if len(info.Keywords) > 0 {
		keywords = strings.Join(info.Keywords, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "请分析以下网站信息：\n网站URL: %s\n网站标题: %s\n网站描述: %s\n关键词: %s",
		rawURL, info.Title, info.Description, keywords)
	if info.PageContent != "" {
		content := []rune(info.PageContent)
		if len(content) > maxPromptContent {
			content = content[:maxPromptContent]
		}
		fmt.Fprintf(&b, "\n页面主要内容: %s...", string(content))
	}

	return b.String()
}
