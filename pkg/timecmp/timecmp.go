// Package timecmp 解析类似 find -mtime 的天数条件，并判断文件修改时间是否满足条件
package timecmp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/moyu-x/timovate/internal"
)

// Kind 比较方式
type Kind int

const (
	Exact     Kind = iota // 恰好 n 天
	OlderThan             // 超过 n 天（+n）
	NewerThan             // 不足 n 天（-n）
)

// Comparison 时间比较条件，解析后不可变
type Comparison struct {
	kind Kind
	days uint64
}

// ParseError 天数字符串无法解析
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("无效的天数参数: '%s'", e.Input)
}

func NewExact(days uint64) Comparison     { return Comparison{kind: Exact, days: days} }
func NewOlderThan(days uint64) Comparison { return Comparison{kind: OlderThan, days: days} }
func NewNewerThan(days uint64) Comparison { return Comparison{kind: NewerThan, days: days} }

// Parse 解析天数字符串
// "+30" 表示超过 30 天，"-15" 表示不足 15 天，"0" 表示恰好 0 天
func Parse(input string) (Comparison, error) {
	kind := Exact
	rest := input
	switch {
	case strings.HasPrefix(input, "+"):
		kind, rest = OlderThan, input[1:]
	case strings.HasPrefix(input, "-"):
		kind, rest = NewerThan, input[1:]
	}

	// ParseUint 不接受符号，"+-5" 之类的输入会在这里被拒绝
	days, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return Comparison{}, &ParseError{Input: input}
	}

	return Comparison{kind: kind, days: days}, nil
}

func (c Comparison) Kind() Kind   { return c.kind }
func (c Comparison) Days() uint64 { return c.days }

// AgeDays 计算整天数的文件年龄，未来时间按 0 处理
func AgeDays(modified, now time.Time) uint64 {
	age := now.Sub(modified)
	if age < 0 {
		return 0
	}
	return uint64(age/time.Second) / internal.SecondsPerDay
}

// Matches 判断修改时间是否满足条件；零值时间视为无法读取，不匹配
func (c Comparison) Matches(modified, now time.Time) bool {
	if modified.IsZero() {
		return false
	}

	age := AgeDays(modified, now)
	switch c.kind {
	case OlderThan:
		return age > c.days
	case NewerThan:
		return age < c.days
	default:
		return age == c.days
	}
}

func (c Comparison) String() string {
	switch c.kind {
	case OlderThan:
		return fmt.Sprintf("+%d", c.days)
	case NewerThan:
		return fmt.Sprintf("-%d", c.days)
	default:
		return strconv.FormatUint(c.days, 10)
	}
}
