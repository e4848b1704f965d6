package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// telegramBotTokenRegexp 텔레그램 봇 토큰 형식(숫자ID:인증문자열)을 검증하는 정규식입니다.
var telegramBotTokenRegexp = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]{30,}$`)

var (
	configValidator     *validator.Validate
	configValidatorOnce sync.Once
)

// newValidator 설정 검증 전용 validator 인스턴스를 생성합니다.
// 에러 메시지에 구조체 필드명 대신 json 태그명을 노출하도록 구성하며,
// 설정 항목 전용 커스텀 검증 규칙을 등록합니다.
func newValidator() *validator.Validate {
	configValidatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// cors_origin: 스킴과 호스트를 갖춘 절대 URL인지 검증합니다.
		_ = v.RegisterValidation("cors_origin", func(fl validator.FieldLevel) bool {
			origin := fl.Field().String()
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && u.Path == ""
		})

		// telegram_bot_token: 텔레그램 봇 토큰 형식인지 검증합니다.
		_ = v.RegisterValidation("telegram_bot_token", func(fl validator.FieldLevel) bool {
			return telegramBotTokenRegexp.MatchString(fl.Field().String())
		})

		configValidator = v
	})

	return configValidator
}

// validateStruct 구조체의 validate 태그를 검사하고, 첫 번째 위반 사항을
// 사용자가 바로 조치할 수 있는 한국어 메시지의 InvalidInput 에러로 변환합니다.
func validateStruct(s interface{}, contextName string) error {
	err := newValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 설정 검증 중 오류가 발생했습니다", contextName))
	}

	fieldErr := validationErrors[0]

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s: %s", contextName, friendlyMessage(fieldErr)))
}

// friendlyMessage validator의 필드 에러를 설정 항목별 한국어 안내 메시지로 변환합니다.
func friendlyMessage(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	tag := fieldErr.Tag()

	switch {
	case field == "listen_port":
		return fmt.Sprintf("웹 서버 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다: '%v'", fieldErr.Value())

	case field == "tls_cert_file" && tag == "required_if":
		return "TLS 서버 활성화 시 인증서 파일(tls_cert_file) 설정은 필수입니다"
	case field == "tls_cert_file" && tag == "file":
		return fmt.Sprintf("TLS 인증서 파일(tls_cert_file)을 찾을 수 없습니다: '%v'", fieldErr.Value())
	case field == "tls_key_file" && tag == "required_if":
		return "TLS 서버 활성화 시 개인키 파일(tls_key_file) 설정은 필수입니다"
	case field == "tls_key_file" && tag == "file":
		return fmt.Sprintf("TLS 개인키 파일(tls_key_file)을 찾을 수 없습니다: '%v'", fieldErr.Value())

	case tag == "cors_origin":
		return fmt.Sprintf("CORS 허용 도메인은 'https://example.com' 형식이어야 합니다: '%v'", fieldErr.Value())

	case field == "bot_token" && tag == "required_if":
		return "텔레그램 알림 활성화 시 봇 토큰(bot_token) 설정은 필수입니다"
	case tag == "telegram_bot_token":
		return "텔레그램 봇 토큰(bot_token) 형식이 올바르지 않습니다 (예: 123456789:ABC...)"
	case field == "chat_id" && tag == "required_if":
		return "텔레그램 알림 활성화 시 채팅 ID(chat_id) 설정은 필수입니다"

	case field == "name" && tag == "required":
		return "A/B 테스트 이름(name)은 필수입니다"
	case field == "variants" && tag == "min":
		return fmt.Sprintf("A/B 테스트 변형(variants)은 최소 %s개 이상이어야 합니다", fieldErr.Param())
	case strings.HasPrefix(field, "variants") && tag == "required":
		return "A/B 테스트 변형(variants) 목록에 빈 값이 포함되어 있습니다"

	case tag == "required":
		return fmt.Sprintf("'%s' 설정은 필수입니다", field)
	}

	return fmt.Sprintf("'%s' 설정이 올바르지 않습니다 (규칙: %s)", field, tag)
}
