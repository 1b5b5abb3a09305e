package product

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ValueSerializer encodes url_rewrite metadata the way the installed
// Magento version stores it.
type ValueSerializer interface {
	Serialize(m map[string]string) string
	Extract(serialized, key string) string
}

// JSONSerializer is used from Magento 2.2 on.
type JSONSerializer struct{}

func (JSONSerializer) Serialize(m map[string]string) string {
	if len(m) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(m)
	return string(b)
}

func (JSONSerializer) Extract(serialized, key string) string {
	if serialized == "" {
		return ""
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(serialized), &m); err != nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// PHPSerializer writes PHP serialize() output, used by Magento 2.1.
type PHPSerializer struct{}

func (PHPSerializer) Serialize(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	fmt.Fprintf(&b, "a:%d:{", len(keys))
	for _, k := range keys {
		fmt.Fprintf(&b, "s:%d:\"%s\";s:%d:\"%s\";", len(k), k, len(m[k]), m[k])
	}
	b.WriteString("}")
	return b.String()
}

func (PHPSerializer) Extract(serialized, key string) string {
	m, err := parsePHPArray(serialized)
	if err != nil {
		return ""
	}
	return m[key]
}

// parsePHPArray reads a flat a:N:{...} of string or int keys and scalar values.
func parsePHPArray(s string) (map[string]string, error) {
	if !strings.HasPrefix(s, "a:") {
		return nil, fmt.Errorf("not a serialized array")
	}
	open := strings.IndexByte(s, '{')
	if open < 0 || !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("malformed serialized array")
	}
	body := s[open+1 : len(s)-1]
	out := map[string]string{}
	var tokens []string
	for len(body) > 0 {
		tok, rest, err := nextPHPToken(body)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		body = rest
	}
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("odd number of tokens")
	}
	for i := 0; i < len(tokens); i += 2 {
		out[tokens[i]] = tokens[i+1]
	}
	return out, nil
}

func nextPHPToken(s string) (string, string, error) {
	if len(s) < 2 {
		return "", "", fmt.Errorf("truncated token")
	}
	switch s[0] {
	case 's':
		colon := strings.IndexByte(s[2:], ':')
		if colon < 0 {
			return "", "", fmt.Errorf("bad string length")
		}
		n, err := strconv.Atoi(s[2 : 2+colon])
		if err != nil {
			return "", "", err
		}
		start := 2 + colon + 2
		if start+n+2 > len(s) {
			return "", "", fmt.Errorf("string overruns input")
		}
		return s[start : start+n], s[start+n+2:], nil
	case 'i', 'd', 'b':
		end := strings.IndexByte(s, ';')
		if end < 0 {
			return "", "", fmt.Errorf("unterminated scalar")
		}
		return s[2:end], s[end+1:], nil
	case 'N':
		return "", s[2:], nil
	default:
		return "", "", fmt.Errorf("unsupported token %q", s[0])
	}
}

// NewValueSerializer picks the serializer for version ("2.1" and below use
// PHP serialize). An empty version inspects stored url_rewrite metadata.
func NewValueSerializer(db *gorm.DB, version string) (ValueSerializer, error) {
	if version != "" {
		if isMagento21(version) {
			return PHPSerializer{}, nil
		}
		return JSONSerializer{}, nil
	}
	var samples []string
	err := db.Table("url_rewrite").
		Where("metadata IS NOT NULL AND metadata <> ''").
		Limit(1).
		Pluck("metadata", &samples).Error
	if err != nil {
		return nil, fmt.Errorf("detect metadata format: %w", err)
	}
	if len(samples) > 0 && strings.HasPrefix(samples[0], "a:") {
		return PHPSerializer{}, nil
	}
	return JSONSerializer{}, nil
}

func isMagento21(version string) bool {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return false
	}
	major, err1 := strconv.Atoi(parts[0])
	minor, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return false
	}
	return major < 2 || (major == 2 && minor <= 1)
}
