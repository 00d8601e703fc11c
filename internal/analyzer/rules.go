package analyzer

import (
	"net/url"
	"regexp"
	"strings"

	"navhub/pkg/webmeta"
)

// contentRule classifies a website by keywords found in its title,
// description and meta keywords. Rules are ordered; the first match wins.
type contentRule struct {
	keywords []string
	category string
	icon     string
	tags     []string
}

var contentRules = []contentRule{
	{
		keywords: []string{"github", "gitlab", "bitbucket", "code", "repository", "代码", "仓库"},
		category: "代码托管", icon: "GitBranch",
		tags: []string{"代码管理", "版本控制", "开源", "协作开发"},
	},
	{
		keywords: []string{"figma", "sketch", "adobe", "design", "ui", "ux", "设计"},
		category: "UI设计工具", icon: "Palette",
		tags: []string{"界面设计", "UI设计", "原型制作", "设计工具"},
	},
	{
		keywords: []string{"trading", "stock", "investment", "finance", "股票", "交易", "投资", "证券"},
		category: "股票交易", icon: "TrendingUp",
		tags: []string{"股票投资", "金融交易", "证券市场", "投资理财"},
	},
	{
		keywords: []string{"crypto", "bitcoin", "blockchain", "加密", "比特币", "区块链"},
		category: "加密货币", icon: "Coins",
		tags: []string{"数字货币", "加密交易", "区块链", "虚拟货币"},
	},
	{
		keywords: []string{"translate", "translation", "翻译", "语言"},
		category: "在线翻译", icon: "Globe",
		tags: []string{"语言翻译", "多语言", "在线工具", "文本翻译"},
	},
	{
		keywords: []string{"video", "youtube", "streaming", "视频", "直播"},
		category: "视频平台", icon: "Video",
		tags: []string{"视频播放", "在线视频", "流媒体", "视频分享"},
	},
	{
		keywords: []string{"music", "spotify", "audio", "音乐", "音频"},
		category: "音乐平台", icon: "Music",
		tags: []string{"在线音乐", "音频播放", "音乐流媒体", "音乐分享"},
	},
	{
		keywords: []string{"news", "blog", "article", "新闻", "博客", "文章"},
		category: "新闻博客", icon: "Newspaper",
		tags: []string{"新闻资讯", "文章阅读", "媒体内容", "信息获取"},
	},
	{
		keywords: []string{"shop", "buy", "store", "ecommerce", "购物", "商店", "电商"},
		category: "在线购物", icon: "ShoppingBag",
		tags: []string{"在线购物", "电子商务", "商品销售", "购买服务"},
	},
	{
		keywords: []string{"learn", "education", "course", "tutorial", "学习", "教育", "课程"},
		category: "在线学习", icon: "BookOpen",
		tags: []string{"在线教育", "学习资源", "知识获取", "技能培训"},
	},
	{
		keywords: []string{"game", "gaming", "play", "游戏", "娱乐"},
		category: "在线游戏", icon: "Gamepad2",
		tags: []string{"网页游戏", "休闲娱乐", "游戏平台", "互动娱乐"},
	},
	{
		keywords: []string{"chat", "message", "social", "聊天", "社交", "消息"},
		category: "社交通讯", icon: "MessageCircle",
		tags: []string{"即时通讯", "社交网络", "在线聊天", "沟通工具"},
	},
	{
		keywords: []string{"tool", "utility", "converter", "工具", "转换", "实用"},
		category: "实用工具", icon: "Wrench",
		tags: []string{"在线工具", "实用功能", "效率工具", "便民服务"},
	},
	{
		keywords: []string{"programming", "developer", "api", "documentation", "编程", "开发"},
		category: "开发工具", icon: "Code",
		tags: []string{"软件开发", "编程工具", "API服务", "开发资源"},
	},
}

// domainRule classifies well-known hosts when no content rule matched.
type domainRule struct {
	domain   string
	category string
	icon     string
	tags     []string
}

// Ordered so a hostname matching several entries always picks the first.
var domainRules = []domainRule{
	{"github.com", "代码托管", "GitBranch", []string{"开源代码", "版本控制", "开发者社区"}},
	{"figma.com", "UI设计工具", "Palette", []string{"界面设计", "协作设计", "原型制作"}},
	{"youtube.com", "视频平台", "Video", []string{"视频播放", "在线视频", "视频分享"}},
	{"twitter.com", "社交媒体", "MessageCircle", []string{"社交网络", "微博客", "实时资讯"}},
	{"linkedin.com", "职业社交", "Users", []string{"职业网络", "求职招聘", "商务社交"}},
	{"medium.com", "内容平台", "PenTool", []string{"文章发布", "知识分享", "博客平台"}},
	{"stackoverflow.com", "开发社区", "Code", []string{"编程问答", "技术交流", "开发者社区"}},
}

// contentTags is the vocabulary mined from title+description to enrich rule
// tags with site-specific ones.
var contentTags = []string{
	"人工智能", "AI", "机器学习", "区块链", "云计算", "大数据",
	"前端", "后端", "全栈", "移动开发", "数据分析", "算法",
	"免费", "付费", "订阅", "会员", "企业版", "个人版",
	"实时", "离线", "同步", "云端", "本地", "跨平台",
	"金融", "教育", "医疗", "电商", "游戏", "媒体",
	"设计", "营销", "办公", "娱乐", "社交", "新闻",
}

// descriptionTemplates rewrites titles into a short description per category.
var descriptionTemplates = map[string]string{
	"代码托管":  "提供代码版本管理和协作开发服务",
	"UI设计工具": "专业的界面设计和原型制作平台",
	"股票交易":  "提供股票投资和金融交易服务",
	"加密货币":  "数字货币交易和区块链服务平台",
	"在线翻译":  "多语言翻译和语言学习工具",
	"视频平台":  "在线视频播放和内容分享平台",
	"音乐平台":  "数字音乐播放和音频内容服务",
	"新闻博客":  "提供新闻资讯和内容发布服务",
	"在线购物":  "电子商务和在线购物平台",
	"在线学习":  "教育培训和知识分享平台",
	"在线游戏":  "网页游戏和娱乐互动平台",
	"社交通讯":  "社交网络和即时通讯服务",
	"实用工具":  "提供各类在线工具和实用功能",
	"开发工具":  "面向开发者的编程和开发工具",
}

// classifyByRules classifies a website without the model. It always produces
// a usable classification: keyword rules first, then well-known domains, then
// a generic category synthesized from the hostname.
func classifyByRules(rawURL string, info *webmeta.ExtractedInfo) Classification {
	content := strings.ToLower(info.Title + " " + info.Description + " " + strings.Join(info.Keywords, " "))

	for _, rule := range contentRules {
		for _, kw := range rule.keywords {
			if !strings.Contains(content, strings.ToLower(kw)) {
				continue
			}

			tags := append([]string{}, rule.tags...)
			tags = append(tags, tagsFromContent(info)...)
			if len(tags) > maxRuleTags {
				tags = tags[:maxRuleTags]
			}

			return Classification{
				Category:      rule.category,
				Tags:          tags,
				Description:   describeByRules(info.Title, info.Description, rule.category),
				SuggestedIcon: rule.icon,
			}
		}
	}

	category, icon, tags := classifyByDomain(rawURL)

	return Classification{
		Category:      category,
		Tags:          tags,
		Description:   describeByRules(info.Title, info.Description, category),
		SuggestedIcon: icon,
	}
}

const maxRuleTags = 5

// tagsFromContent mines up to three extra tags out of the title and
// description, padding with generic ones when the text yields fewer than two.
func tagsFromContent(info *webmeta.ExtractedInfo) []string {
	content := strings.ToLower(info.Title + " " + info.Description)

	var tags []string
	for _, tag := range contentTags {
		if strings.Contains(content, strings.ToLower(tag)) {
			tags = append(tags, tag)
		}
	}
	if len(tags) < 2 {
		tags = append(tags, "在线服务", "网页应用")
	}
	if len(tags) > 3 {
		tags = tags[:3]
	}

	return tags
}

// classifyByDomain classifies by hostname alone: known sites, then TLD, then
// generic hostname keywords, finally a category synthesized from the domain
// label itself.
func classifyByDomain(rawURL string) (category, icon string, tags []string) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return "网络服务", "Globe", []string{"在线平台", "网络服务", "互联网应用"}
	}
	hostname := strings.ToLower(parsed.Hostname())
	domain := strings.TrimPrefix(hostname, "www.")

	for _, rule := range domainRules {
		if strings.Contains(domain, rule.domain) {
			return rule.category, rule.icon, rule.tags
		}
	}

	switch {
	case strings.HasSuffix(domain, ".edu"):
		return "教育机构", "GraduationCap", []string{"教育资源", "学术网站", "高等教育"}
	case strings.HasSuffix(domain, ".gov"):
		return "政府服务", "Building", []string{"政府网站", "公共服务", "官方信息"}
	case strings.HasSuffix(domain, ".org"):
		return "组织机构", "Users", []string{"非营利组织", "公益机构", "社会组织"}
	}

	switch {
	case strings.Contains(hostname, "shop"), strings.Contains(hostname, "store"), strings.Contains(hostname, "mall"):
		return "在线商店", "ShoppingBag", []string{"电子商务", "在线购物", "商品销售"}
	case strings.Contains(hostname, "blog"), strings.Contains(hostname, "news"):
		return "内容网站", "FileText", []string{"内容发布", "信息分享", "文章阅读"}
	case strings.Contains(hostname, "app"), strings.Contains(hostname, "tool"):
		return "在线应用", "Smartphone", []string{"网页应用", "在线工具", "实用服务"}
	}

	label := strings.Split(domain, ".")[0]
	if label == "" {
		return "网络服务", "Globe", []string{"在线平台", "网络服务", "互联网应用"}
	}
	runes := []rune(label)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]

	return string(runes) + "服务", "Globe", []string{"在线服务", "网站平台", "互联网服务"}
}

var (
	titleSeparatorsRe = regexp.MustCompile(`[\s\-_]+`)
	parentheticalRe   = regexp.MustCompile(`[（(][^）)]*[）)]`)
	punctuationRunRe  = regexp.MustCompile(`[，。！？；：、,.!?;:]+`)
	spaceRunRe        = regexp.MustCompile(`\s+`)
)

// describeByRules builds a short site description without the model. Category
// templates win; otherwise a reasonably sized original description is cleaned
// up and clamped, and as a last resort a generic line is synthesized.
func describeByRules(title, original, category string) string {
	cleanTitle := strings.TrimSpace(titleSeparatorsRe.ReplaceAllString(title, " "))

	if template, ok := descriptionTemplates[category]; ok {
		return cleanTitle + " - " + template
	}

	if n := len([]rune(original)); n > 10 && n < 200 {
		cleaned := parentheticalRe.ReplaceAllString(original, "")
		cleaned = punctuationRunRe.ReplaceAllString(cleaned, "，")
		cleaned = strings.TrimSpace(spaceRunRe.ReplaceAllString(cleaned, " "))
		if runes := []rune(cleaned); len(runes) > 80 {
			return string(runes[:77]) + "..."
		}

		return cleaned
	}

	return cleanTitle + " - " + category + "相关服务平台"
}
