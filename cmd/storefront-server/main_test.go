package main

import (
	"strings"
	"testing"

	"github.com/darkkaiser/storefront-server/internal/config"
	"github.com/darkkaiser/storefront-server/internal/pkg/version"
	"github.com/stretchr/testify/assert"
)

// TestAppMetadata는 애플리케이션의 기본 메타데이터 설정이 올바른지 검증합니다.
func TestAppMetadata(t *testing.T) {
	t.Parallel()

	t.Run("AppName 검증", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "storefront-server", config.AppName, "애플리케이션 이름은 'storefront-server'여야 합니다")
		assert.NotContains(t, config.AppName, " ", "애플리케이션 이름에는 공백이 포함될 수 없습니다")
	})

	t.Run("ConfigFileName 검증", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "storefront-server.json", config.DefaultFilename)
	})
}

// TestBuildInfo는 빌드 타임에 주입되는 정보들의 기본 상태를 검증합니다.
func TestBuildInfo(t *testing.T) {
	t.Parallel()

	bi := version.Get()

	assert.NotEmpty(t, bi.Version, "ldflags가 없는 환경에서도 기본값이 채워져야 합니다")
	assert.NotEmpty(t, bi.GoVersion)
	assert.NotEmpty(t, bi.OS)
	assert.NotEmpty(t, bi.Arch)
}

// TestBanner는 배너 문자열의 기본 형태를 검증합니다.
func TestBanner(t *testing.T) {
	t.Parallel()

	assert.Contains(t, banner, "%s", "배너에는 버전 출력 자리가 있어야 합니다")
	assert.True(t, strings.HasPrefix(banner, "\n"), "배너는 새 줄로 시작해야 합니다")
}
