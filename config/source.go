package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// InMemorySource 内存属性源
type InMemorySource struct {
	Data map[string]string
}

func (s *InMemorySource) Name() string {
	return "InMemory"
}

func (s *InMemorySource) Load() (map[string]string, error) {
	result := make(map[string]string, len(s.Data))
	for k, v := range s.Data {
		result[k] = v
	}
	return result, nil
}

// EnvSource 环境变量属性源。
// 只收集带指定前缀的变量，键移除前缀后转小写，_ 转为 . 。
type EnvSource struct {
	Prefix string
}

func (s *EnvSource) Name() string {
	return fmt.Sprintf("Env(%s)", s.Prefix)
}

func (s *EnvSource) Load() (map[string]string, error) {
	result := make(map[string]string)
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]
		if s.Prefix != "" {
			if !strings.HasPrefix(key, s.Prefix) {
				continue
			}
			key = strings.TrimPrefix(key, s.Prefix)
		}
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "_", ".")
		if key == "" {
			continue
		}
		result[key] = value
	}
	return result, nil
}

// DotenvSource .env 文件属性源
type DotenvSource struct {
	Path string
}

func (s *DotenvSource) Name() string {
	return fmt.Sprintf("Dotenv(%s)", s.Path)
}

func (s *DotenvSource) Load() (map[string]string, error) {
	return godotenv.Read(s.Path)
}

// JsonFileSource JSON 文件属性源，嵌套结构展开为点号分隔的扁平键
type JsonFileSource struct {
	Path string
}

func (s *JsonFileSource) Name() string {
	return fmt.Sprintf("JsonFile(%s)", s.Path)
}

func (s *JsonFileSource) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return Flatten(raw), nil
}

// YamlFileSource YAML 文件属性源，嵌套结构展开为点号分隔的扁平键
type YamlFileSource struct {
	Path string
}

func (s *YamlFileSource) Name() string {
	return fmt.Sprintf("YamlFile(%s)", s.Path)
}

func (s *YamlFileSource) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return Flatten(raw), nil
}

// Flatten 将嵌套映射展开为点号分隔的扁平 key→string 映射
func Flatten(data map[string]any) map[string]string {
	result := make(map[string]string)
	flattenInto(result, "", data)
	return result
}

func flattenInto(dst map[string]string, prefix string, data map[string]any) {
	for k, v := range data {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch value := v.(type) {
		case map[string]any:
			flattenInto(dst, key, value)
		case map[any]any:
			// yaml.v3 解析到 any 时的旧式映射形态
			m := make(map[string]any, len(value))
			for mk, mv := range value {
				m[fmt.Sprintf("%v", mk)] = mv
			}
			flattenInto(dst, key, m)
		default:
			dst[key] = formatValue(v)
		}
	}
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case float64:
		// JSON 数字统一为 float64，整数值还原为整数形式
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
