// Package icons canonicalizes icon identifiers into the PascalCase format
// used by the frontend icon library and picks default icons for category
// names. Only the syntactic shape is guaranteed; whether an identifier
// exists in the library is the renderer's concern, which falls back to
// DefaultIcon for unknown names.
package icons

import (
	"regexp"
	"strings"
)

// DefaultIcon is returned when no better identifier can be derived.
const DefaultIcon = "MoreHorizontal"

// pascalCaseRe matches identifiers already in canonical shape: an uppercase
// letter followed by letters and digits only.
var pascalCaseRe = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)

// separatorRe splits raw identifiers on runs of hyphens, underscores,
// spaces and dots.
var separatorRe = regexp.MustCompile(`[-_\s.]+`)

// specialCases maps hyphen-normalized lowercase names to library
// identifiers whose naive title-casing would not match the actual icon,
// typically the numbered variants.
var specialCases = map[string]string{
	"bar-chart": "BarChart3",
	"chart-bar": "BarChart3",
	"gamepad":   "Gamepad2",
	"share":     "Share2",
}

// IsPascalCase reports whether s is already a canonical icon identifier.
func IsPascalCase(s string) bool {
	return pascalCaseRe.MatchString(s)
}

// Normalize converts an arbitrary icon name (kebab-case, snake_case,
// camelCase, space or dot separated) into the canonical PascalCase
// identifier. Empty or unconvertible input yields DefaultIcon. Normalize is
// idempotent: canonical input is returned unchanged.
func Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return DefaultIcon
	}

	// special cases are checked against a hyphen-normalized lowercase form
	if fixed, ok := specialCases[strings.ToLower(separatorRe.ReplaceAllString(name, "-"))]; ok {
		return fixed
	}

	if IsPascalCase(name) {
		return name
	}

	var b strings.Builder
	for _, word := range separatorRe.Split(name, -1) {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(strings.ToLower(word[1:]))
	}
	if b.Len() == 0 {
		return DefaultIcon
	}

	return b.String()
}

// categoryIcons maps category names to default icons, checked exactly first
// and then by substring containment in either direction. Kept as an ordered
// slice so a name matching several entries always picks the same one.
var categoryIcons = []struct {
	name string
	icon string
}{
	{"工具效率", "Wrench"},
	{"实用工具", "Tool"},
	{"在线工具", "Globe"},

	{"开发技术", "Code"},
	{"编程开发", "Code"},
	{"技术文档", "FileCode"},
	{"代码托管", "GitBranch"},

	{"设计创意", "Palette"},
	{"UI设计", "Paintbrush"},
	{"设计工具", "Pen"},
	{"创意灵感", "Lightbulb"},

	{"学习教育", "BookOpen"},
	{"在线课程", "GraduationCap"},
	{"知识库", "Library"},
	{"教程文档", "Book"},

	{"娱乐休闲", "Gamepad2"},
	{"游戏", "Gamepad2"},
	{"音乐", "Music"},
	{"视频", "Video"},

	{"社交媒体", "MessageCircle"},
	{"社交平台", "Users"},
	{"聊天通讯", "MessageSquare"},
	{"社区论坛", "Users"},

	{"新闻资讯", "Newspaper"},
	{"博客", "PenTool"},
	{"媒体", "Radio"},

	{"购物电商", "ShoppingBag"},
	{"电商平台", "ShoppingCart"},
	{"品牌官网", "Store"},

	{"生活服务", "MapPin"},
	{"本地服务", "Map"},
	{"实用服务", "Settings"},

	{"金融理财", "TrendingUp"},
	{"银行", "Building"},
	{"投资", "TrendingUp"},
	{"支付", "CreditCard"},
	{"证券", "BarChart3"},
	{"股票", "TrendingUp"},
	{"基金", "PieChart"},

	{"医疗健康", "Heart"},
	{"健康管理", "Activity"},
	{"健身运动", "Activity"},

	{"旅游出行", "Plane"},
	{"交通", "Car"},
	{"地图导航", "Navigation"},

	{"办公软件", "FileText"},
	{"项目管理", "Calendar"},
	{"团队协作", "Users"},

	{"数据分析", "BarChart3"},
	{"数据可视化", "PieChart"},
	{"商业智能", "Brain"},

	{"人工智能", "Cpu"},
	{"机器学习", "Bot"},
	{"区块链", "Link"},
	{"物联网", "Wifi"},
	{"云服务", "Cloud"},

	{"其他", DefaultIcon},
	{"未分类", "Folder"},
}

// keywordIcons is the loose vocabulary checked last, in order.
var keywordIcons = []struct {
	keywords []string
	icon     string
}{
	{[]string{"工具", "tool"}, "Wrench"},
	{[]string{"开发", "code", "编程"}, "Code"},
	{[]string{"设计", "design"}, "Palette"},
	{[]string{"学习", "教育", "learn"}, "BookOpen"},
	{[]string{"游戏", "娱乐", "game"}, "Gamepad2"},
	{[]string{"社交", "social"}, "MessageCircle"},
	{[]string{"新闻", "资讯", "news"}, "Newspaper"},
	{[]string{"购物", "电商", "shop"}, "ShoppingBag"},
	{[]string{"生活", "服务", "life"}, "MapPin"},
	{[]string{"金融", "理财", "股票", "投资"}, "TrendingUp"},
	{[]string{"健康", "医疗"}, "Heart"},
	{[]string{"旅游", "出行"}, "Plane"},
}

// ForCategory picks a default icon for a category name: exact table match,
// then substring containment in either direction, then the keyword
// vocabulary, then DefaultIcon.
func ForCategory(name string) string {
	for _, entry := range categoryIcons {
		if entry.name == name {
			return entry.icon
		}
	}

	for _, entry := range categoryIcons {
		if strings.Contains(name, entry.name) || strings.Contains(entry.name, name) {
			return entry.icon
		}
	}

	lower := strings.ToLower(name)
	for _, entry := range keywordIcons {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.icon
			}
		}
	}

	return DefaultIcon
}
