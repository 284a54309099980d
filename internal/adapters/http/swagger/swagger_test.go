package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/smartystreets/goconvey/convey"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a swagger handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		convey.Convey("When registering the swagger handler", func() {
			Register(ctx, mux)

			convey.Convey("Then it should handle /openapi.yaml route", func() {
				req := httptest.NewRequest("GET", "/openapi.yaml", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
				convey.So(w.Body.Len(), convey.ShouldBeGreaterThan, 0)
			})

			convey.Convey("And it should handle /api-docs route", func() {
				req := httptest.NewRequest("GET", "/api-docs", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "Pickup Ratings API Docs")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "redoc-container")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, redocScript)
			})

			convey.Convey("And it should refuse other methods", func() {
				req := httptest.NewRequest("POST", "/openapi.yaml", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestOpenAPIDocument(t *testing.T) {
	convey.Convey("Given the embedded OpenAPI document", t, func() {
		doc, err := yaml.Parser().Unmarshal(OpenAPI)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then it documents every API route", func() {
			paths, ok := doc["paths"].(map[string]interface{})
			convey.So(ok, convey.ShouldBeTrue)
			for _, p := range []string{"/ratings", "/players", "/players/{name}", "/teams", "/healthz", "/stats", "/metrics"} {
				convey.So(paths, convey.ShouldContainKey, p)
			}
		})
	})
}

func TestSwaggerHandlerWithNilMux(t *testing.T) {
	convey.Convey("Given a nil mux", t, func() {
		ctx := context.Background()

		convey.Convey("When registering the swagger handler", func() {
			convey.Convey("Then it should panic", func() {
				convey.So(func() {
					Register(ctx, nil)
				}, convey.ShouldPanic)
			})
		})
	})
}
