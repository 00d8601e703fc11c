package analyzer

import "strings"

// categoryKeywordGroups are theme keyword groups used to judge whether two
// category names mean roughly the same thing even when they share no
// characters (e.g. 金融理财 vs 投资理财).
var categoryKeywordGroups = [][]string{
	{"金融", "理财", "投资", "股票", "基金", "银行", "财务"},
	{"设计", "UI", "界面", "原型", "视觉", "创意"},
	{"开发", "编程", "代码", "程序", "技术", "软件"},
	{"工具", "实用", "应用", "服务"},
	{"学习", "教育", "培训", "课程", "知识"},
	{"娱乐", "游戏", "视频", "音乐", "电影"},
	{"媒体", "新闻", "资讯", "博客", "文章"},
	{"社交", "聊天", "通讯", "交流", "分享"},
}

// categoryKeywords expands a category name into theme keywords. A group
// counts as matched when any of its keywords appears in the name; a name
// touching several groups gets the union, and a name matching none is its
// own single keyword.
func categoryKeywords(name string) []string {
	var keywords []string
	for _, group := range categoryKeywordGroups {
		for _, keyword := range group {
			if strings.Contains(name, keyword) {
				keywords = append(keywords, group...)

				break
			}
		}
	}
	if len(keywords) == 0 {
		return []string{name}
	}

	return keywords
}

// keywordOverlap scores how close two category names are in meaning, as the
// number of keyword pairs where one contains the other, normalized by the
// larger keyword set. Returns a value in [0, len(smaller set)] territory but
// in practice stays within [0, 1] for distinct names.
func keywordOverlap(a, b string) float64 {
	ka, kb := categoryKeywords(a), categoryKeywords(b)

	matches := 0
	for _, x := range ka {
		for _, y := range kb {
			if strings.Contains(x, y) || strings.Contains(y, x) {
				matches++
			}
		}
	}

	longest := len(ka)
	if len(kb) > longest {
		longest = len(kb)
	}
	if longest == 0 {
		return 0
	}

	return float64(matches) / float64(longest)
}
