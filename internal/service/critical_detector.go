package service

import (
	"bytes"
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/models"
)

// 关键标记来源
const (
	CriticalSourceAISummary = "ai_summary"
	CriticalSourcePattern   = "pattern"
)

// CriticalFlag 关键备注命中项
type CriticalFlag struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	MatchedText string `json:"matched_text,omitempty"`
	Index       int    `json:"index"`
}

// TextSegment 高亮分段
type TextSegment struct {
	Text     string `json:"text"`
	Critical bool   `json:"critical"`
	Type     string `json:"type,omitempty"`
	Label    string `json:"label,omitempty"`
}

type criticalPattern struct {
	re    *regexp.Regexp
	kind  string
	label string
}

// 顺序即检测与输出顺序
var criticalPatterns = []criticalPattern{
	{regexp.MustCompile(`(?i)address.*(different|change|new|correct)`), constants.CriticalAddressChange, "Address Change"},
	{regexp.MustCompile(`(?i)ship\s*to\s*(different|another|new)`), constants.CriticalAddressChange, "Address Change"},
	{regexp.MustCompile(`(?i)(different|new|correct)\s*address`), constants.CriticalAddressChange, "Address Change"},

	{regexp.MustCompile(`(?i)add.*(to|this)\s*order`), constants.CriticalOrderModification, "Order Change"},
	{regexp.MustCompile(`(?i)(forgot|need)\s*to\s*(add|include)`), constants.CriticalOrderModification, "Order Change"},
	{regexp.MustCompile(`(?i)change\s*\w+\s*to\s*\w+`), constants.CriticalOrderModification, "Product Swap"},
	{regexp.MustCompile(`(?i)swap|replace|substitute`), constants.CriticalOrderModification, "Product Swap"},

	{regexp.MustCompile(`(?i)(goes|combine|ship)\s*with.*(order|earlier|previous)`), constants.CriticalCombinedOrder, "Combined Order"},
	{regexp.MustCompile(`(?i)(earlier|previous|other)\s*order`), constants.CriticalCombinedOrder, "Combined Order"},
	{regexp.MustCompile(`(?i)combine\s*(these|orders|shipment)`), constants.CriticalCombinedOrder, "Combined Order"},

	{regexp.MustCompile(`(?i)don'?t\s*ship`), constants.CriticalHoldOrder, "Hold Order"},
	{regexp.MustCompile(`(?i)hold\s*(order|shipment|off)`), constants.CriticalHoldOrder, "Hold Order"},
	{regexp.MustCompile(`(?i)cancel`), constants.CriticalCancelOrder, "Cancel"},
	{regexp.MustCompile(`(?i)wait\s*(until|for|before)`), constants.CriticalHoldOrder, "Wait"},

	{regexp.MustCompile(`(?i)liftgate`), constants.CriticalDeliveryInstruction, "Liftgate"},
	{regexp.MustCompile(`(?i)call\s*(before|when|prior)`), constants.CriticalDeliveryInstruction, "Call Required"},
	{regexp.MustCompile(`(?i)appointment\s*(only|required|needed)`), constants.CriticalDeliveryInstruction, "Appointment"},
	{regexp.MustCompile(`(?i)residential`), constants.CriticalDeliveryInstruction, "Residential"},

	{regexp.MustCompile(`(?i)(check|cash)\s*(on|at)\s*(delivery|pickup)`), constants.CriticalPaymentInstruction, "COD"},
	{regexp.MustCompile(`(?i)pay\s*(when|at|on)\s*(pickup|delivery)`), constants.CriticalPaymentInstruction, "Pay at Pickup"},
}

var criticalTypeLabels = map[string]string{
	constants.CriticalAddressChange:       "Address Change",
	constants.CriticalOrderModification:   "Order Change",
	constants.CriticalCombinedOrder:       "Combined Order",
	constants.CriticalHoldOrder:           "Hold Order",
	constants.CriticalCancelOrder:         "Cancel",
	constants.CriticalDeliveryInstruction: "Delivery Instruction",
	constants.CriticalPaymentInstruction:  "Payment Instruction",
}

// DetectCritical 扫描文本中的关键备注，每个规则最多记录一次命中
func DetectCritical(text string) []CriticalFlag {
	found := make([]CriticalFlag, 0)
	if strings.TrimSpace(text) == "" {
		return found
	}
	for _, p := range criticalPatterns {
		loc := p.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		found = append(found, CriticalFlag{
			Type:        p.kind,
			Label:       p.label,
			MatchedText: text[loc[0]:loc[1]],
			Index:       loc[0],
		})
	}
	return found
}

// HasCritical 文本是否包含关键备注
func HasCritical(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	for _, p := range criticalPatterns {
		if p.re.MatchString(text) {
			return true
		}
	}
	return false
}

// CriticalBadgeLabels 返回去重后的徽标文案（按首次出现顺序）
func CriticalBadgeLabels(text string) []string {
	return UniqueCriticalLabels(DetectCritical(text))
}

// UniqueCriticalLabels 对命中项的文案去重
func UniqueCriticalLabels(flags []CriticalFlag) []string {
	labels := make([]string, 0, len(flags))
	seen := make(map[string]struct{}, len(flags))
	for _, flag := range flags {
		label := strings.TrimSpace(flag.Label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}

// HighlightCritical 将文本切分为普通段与关键段，与前一命中重叠的命中被跳过
func HighlightCritical(text string) []TextSegment {
	if text == "" {
		return []TextSegment{{Text: ""}}
	}
	found := DetectCritical(text)
	if len(found) == 0 {
		return []TextSegment{{Text: text}}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Index < found[j].Index
	})

	segments := make([]TextSegment, 0, len(found)*2+1)
	lastEnd := 0
	for _, match := range found {
		if match.Index < lastEnd {
			continue
		}
		if match.Index > lastEnd {
			segments = append(segments, TextSegment{Text: text[lastEnd:match.Index]})
		}
		segments = append(segments, TextSegment{
			Text:     match.MatchedText,
			Critical: true,
			Type:     match.Type,
			Label:    match.Label,
		})
		lastEnd = match.Index + len(match.MatchedText)
	}
	if lastEnd < len(text) {
		segments = append(segments, TextSegment{Text: text[lastEnd:]})
	}
	return segments
}

// OrderCriticalFlags 返回订单关键标记及来源
// ai_summary_critical 可解析为列表时以其为准（即使为空列表），否则回退扫描 comments 与 notes。
func OrderCriticalFlags(order *models.Order) ([]CriticalFlag, string) {
	if order == nil {
		return []CriticalFlag{}, CriticalSourcePattern
	}
	if flags, ok := parseAISummaryCritical(order.AISummaryCritical); ok {
		return flags, CriticalSourceAISummary
	}
	return DetectCritical(order.Comments + " " + order.Notes), CriticalSourcePattern
}

// OrderCriticalTypes 返回订单关键标记类型列表
func OrderCriticalTypes(order *models.Order) []string {
	flags, _ := OrderCriticalFlags(order)
	types := make([]string, 0, len(flags))
	for _, flag := range flags {
		types = append(types, flag.Type)
	}
	return types
}

func parseAISummaryCritical(raw json.RawMessage) ([]CriticalFlag, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false
	}
	// 后端通常以 JSON 字符串形式存放列表
	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return nil, false
		}
		trimmed = bytes.TrimSpace([]byte(encoded))
		if len(trimmed) == 0 {
			return nil, false
		}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}

	flags := make([]CriticalFlag, 0, len(items))
	for _, item := range items {
		if flag, ok := decodeCriticalItem(item); ok {
			flags = append(flags, flag)
		}
	}
	return flags, true
}

func decodeCriticalItem(item json.RawMessage) (CriticalFlag, bool) {
	var text string
	if err := json.Unmarshal(item, &text); err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			return CriticalFlag{}, false
		}
		return CriticalFlag{Type: text, Label: criticalLabelForType(text)}, true
	}

	var obj struct {
		Type        string `json:"type"`
		Label       string `json:"label"`
		Text        string `json:"text"`
		MatchedText string `json:"matched_text"`
	}
	if err := json.Unmarshal(item, &obj); err != nil {
		return CriticalFlag{}, false
	}
	kind := strings.TrimSpace(obj.Type)
	if kind == "" {
		return CriticalFlag{}, false
	}
	label := strings.TrimSpace(obj.Label)
	if label == "" {
		label = criticalLabelForType(kind)
	}
	matched := obj.MatchedText
	if matched == "" {
		matched = obj.Text
	}
	return CriticalFlag{Type: kind, Label: label, MatchedText: matched}, true
}

func criticalLabelForType(kind string) string {
	if label, ok := criticalTypeLabels[strings.ToUpper(kind)]; ok {
		return label
	}
	return kind
}
