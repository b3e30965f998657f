package dto

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DateLayout 考勤日期格式 DD/MM/YYYY
const DateLayout = "02/01/2006"

var (
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	registerOnce  sync.Once
	registerErr   error
)

// RegisterValidators 向 gin 的校验引擎注册自定义规则（幂等）
// 同时让校验错误使用 json/form 字段名
//   - mobile:   10 位数字手机号
//   - ddmmyyyy: DD/MM/YYYY 日期
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// 校验错误中的字段名使用 json/form 标签名
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				if name := strings.Split(f.Tag.Get(tag), ",")[0]; name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
		if registerErr = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
			return mobilePattern.MatchString(fl.Field().String())
		}); registerErr != nil {
			return
		}
		registerErr = v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
			return IsValidDate(fl.Field().String())
		})
	})
	return registerErr
}

// IsValidDate 校验 DD/MM/YYYY
func IsValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
