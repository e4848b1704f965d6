package storefront

import (
	"context"
	"net/http"

	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	"github.com/darkkaiser/storefront-server/internal/service/api/httputil"
	"github.com/darkkaiser/storefront-server/internal/service/cache"
	"github.com/darkkaiser/storefront-server/internal/service/content"
	"github.com/labstack/echo/v4"
)

// HomepageHandler 홈페이지 마케팅 콘텐츠를 반환합니다.
//
// 콘텐츠 조회 실패는 소프트하게 처리되어 대체 문구가 반환됩니다.
// 페이지는 콘텐츠 백엔드 장애에도 항상 렌더링 가능해야 합니다.
func (h *Handler) HomepageHandler(c echo.Context) error {
	value, err := h.store.GetOrLoad(c.Request().Context(), cache.KeyHomepage, h.appConfig.Cache.ContentTTLDuration(), []string{cache.TagHomepage}, func(ctx context.Context) (interface{}, error) {
		homepage := h.content.GetHomepage(ctx)
		if homepage == nil {
			// 실패를 캐시하지 않도록 에러로 변환합니다. 만료된 항목이 있으면 그 값이 유지됩니다.
			return nil, newUnavailableError("홈페이지")
		}
		return homepage, nil
	})
	if err != nil {
		h.log(c).WithError(err).Warn("홈페이지 콘텐츠 조회 실패 (대체 문구로 응답)")
		return c.JSON(http.StatusOK, fallbackHomepage())
	}

	homepage, _ := value.(*content.Homepage)
	if homepage == nil {
		return c.JSON(http.StatusOK, fallbackHomepage())
	}

	return c.JSON(http.StatusOK, homepage)
}

// PageBySlugHandler 슬러그로 콘텐츠 페이지를 반환합니다.
// 조회 실패 시 대체 문구를 담은 페이지로 응답합니다.
func (h *Handler) PageBySlugHandler(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return httputil.NewBadRequestError("페이지 슬러그가 필요합니다")
	}

	value, err := h.store.GetOrLoad(c.Request().Context(), cache.KeyPage(slug), h.appConfig.Cache.ContentTTLDuration(), []string{cache.TagPages}, func(ctx context.Context) (interface{}, error) {
		page := h.content.GetPageBySlug(ctx, slug)
		if page == nil {
			return nil, newUnavailableError("페이지")
		}
		return page, nil
	})
	if err != nil {
		h.log(c).WithField("slug", slug).WithError(err).Warn("페이지 콘텐츠 조회 실패 (대체 문구로 응답)")
		return c.JSON(http.StatusOK, fallbackPage(slug))
	}

	page, _ := value.(*content.Page)
	if page == nil {
		return c.JSON(http.StatusOK, fallbackPage(slug))
	}

	return c.JSON(http.StatusOK, page)
}

// ServiceBySlugHandler 레거시 서비스 문서를 반환합니다.
// 초기 스키마와의 하위 호환용 엔드포인트로, 문서가 없으면 404를 반환합니다.
func (h *Handler) ServiceBySlugHandler(c echo.Context) error {
	handle := c.Param("handle")
	if handle == "" {
		return httputil.NewBadRequestError("서비스 핸들이 필요합니다")
	}

	value, err := h.store.GetOrLoad(c.Request().Context(), cache.KeyService(handle), h.appConfig.Cache.ContentTTLDuration(), []string{cache.TagServices}, func(ctx context.Context) (interface{}, error) {
		doc := h.content.GetService(ctx, handle)
		if doc == nil {
			return nil, newUnavailableError("서비스 문서")
		}
		return doc, nil
	})
	if err != nil {
		return httputil.NewNotFoundError(constants.ErrMsgNotFound)
	}

	doc, _ := value.(*content.ServiceDoc)
	if doc == nil {
		return httputil.NewNotFoundError(constants.ErrMsgNotFound)
	}

	return c.JSON(http.StatusOK, doc)
}

// fallbackHomepage 콘텐츠 백엔드 장애 시 사용되는 홈페이지 대체 문구입니다.
func fallbackHomepage() *content.Homepage {
	return &content.Homepage{
		HeroHeading:    "Welcome to our store",
		HeroSubheading: "Quality products, thoughtfully made.",
	}
}

// fallbackPage 콘텐츠 백엔드 장애 시 사용되는 페이지 대체 문구입니다.
func fallbackPage(slug string) *content.Page {
	return &content.Page{
		Slug:     slug,
		Title:    "We'll be right back",
		BodyHTML: "<p>This content is temporarily unavailable. Please check back soon.</p>",
	}
}
