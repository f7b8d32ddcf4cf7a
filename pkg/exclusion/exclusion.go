// Package exclusion 基于正则表达式的路径排除规则
package exclusion

import (
	"fmt"
	"regexp"
)

// PatternError 排除规则编译失败
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("无效的正则表达式 '%s': %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Set 编译后的排除规则集合，构建后只读，可并发使用
type Set struct {
	patterns []*regexp.Regexp
}

// Compile 编译全部规则，任意一条失败即返回错误
func Compile(patterns []string) (*Set, error) {
	set := &Set{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, &PatternError{Pattern: p, Err: err}
		}
		set.patterns = append(set.patterns, re)
	}
	return set, nil
}

// IsExcluded 完整路径匹配任意一条规则即被排除
func (s *Set) IsExcluded(path string) bool {
	if s == nil {
		return false
	}
	for _, re := range s.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Patterns 返回原始规则字符串
func (s *Set) Patterns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.patterns))
	for i, re := range s.patterns {
		out[i] = re.String()
	}
	return out
}
