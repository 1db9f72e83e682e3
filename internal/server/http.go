package server

import (
	"context"
	"io"
	stdhttp "net/http"
	"strconv"

	"TradeGate/internal/conf"
	"TradeGate/internal/server/middleware"
	"TradeGate/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(NewHTTPServer)

// defaultCartID serves clients that have not established a cart session.
const defaultCartID = "default"

// cartID resolves the cart addressed by the request from the X-Cart-ID
// header.
func cartID(ctx http.Context) string {
	if id := ctx.Request().Header.Get("X-Cart-ID"); id != "" {
		return id
	}
	return defaultCartID
}

// NewHTTPServer builds the HTTP server and registers every route.
func NewHTTPServer(
	c *conf.Server,
	cartSvc *service.CartService,
	catalogSvc *service.CatalogService,
	uploadSvc *service.UploadService,
	authSvc *service.AuthService,
	paymentSvc *service.PaymentService,
	logger log.Logger,
) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			middleware.Logging(logger),
			middleware.Metrics(),
		),
	}
	if c.Http.Network != "" {
		opts = append(opts, http.Network(c.Http.Network))
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != nil {
		opts = append(opts, http.Timeout(c.Http.Timeout.AsDuration()))
	}
	srv := http.NewServer(opts...)

	srv.HandlePrefix("/metrics", promhttp.Handler())
	srv.HandleFunc("/healthz", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	registerCartRoutes(srv, cartSvc)
	registerCatalogRoutes(srv, catalogSvc)
	registerUploadRoutes(srv, uploadSvc)
	registerAuthRoutes(srv, authSvc)
	registerPaymentRoutes(srv, paymentSvc)

	return srv
}

func registerCartRoutes(srv *http.Server, svc *service.CartService) {
	r := srv.Route("/v1")

	r.GET("/cart", func(ctx http.Context) error {
		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return svc.GetCart(c, cartID(ctx))
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.POST("/cart/items", func(ctx http.Context) error {
		var req service.AddItemRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.AddItem(c, cartID(ctx), in.(*service.AddItemRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.PATCH("/cart/items/{id}", func(ctx http.Context) error {
		var req service.UpdateItemRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		lineID := ctx.Vars().Get("id")
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.UpdateItem(c, cartID(ctx), lineID, in.(*service.UpdateItemRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.DELETE("/cart/items/{id}", func(ctx http.Context) error {
		lineID := ctx.Vars().Get("id")
		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return svc.RemoveItem(c, cartID(ctx), lineID)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.DELETE("/cart", func(ctx http.Context) error {
		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return svc.ClearCart(c, cartID(ctx))
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.POST("/cart/open", func(ctx http.Context) error {
		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return svc.OpenCart(c, cartID(ctx))
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.POST("/cart/close", func(ctx http.Context) error {
		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return svc.CloseCart(c, cartID(ctx))
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
}

func registerCatalogRoutes(srv *http.Server, svc *service.CatalogService) {
	r := srv.Route("/v1")

	r.GET("/products", func(ctx http.Context) error {
		query := ctx.Query()
		supplierID := query.Get("supplierId")
		offset, _ := strconv.Atoi(query.Get("offset"))
		limit, _ := strconv.Atoi(query.Get("limit"))
		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return svc.ListProducts(c, supplierID, offset, limit)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.GET("/products/{id}", func(ctx http.Context) error {
		id := ctx.Vars().Get("id")
		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return svc.GetProduct(c, id)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
}

func registerUploadRoutes(srv *http.Server, svc *service.UploadService) {
	r := srv.Route("/v1")

	handleUpload := func(process func(filename string, data []byte) (*service.UploadResult, error)) func(http.Context) error {
		return func(ctx http.Context) error {
			file, header, err := ctx.Request().FormFile("file")
			if err != nil {
				return err
			}
			defer file.Close()

			data, err := io.ReadAll(file)
			if err != nil {
				return err
			}

			h := ctx.Middleware(func(context.Context, interface{}) (interface{}, error) {
				return process(header.Filename, data)
			})
			out, err := h(ctx, nil)
			if err != nil {
				return err
			}
			return ctx.Result(200, out)
		}
	}

	r.POST("/uploads/avatar", handleUpload(svc.ProcessAvatar))
	r.POST("/uploads/document", handleUpload(svc.ProcessDocument))
}

func registerAuthRoutes(srv *http.Server, svc *service.AuthService) {
	r := srv.Route("/v1")

	r.POST("/auth/login", func(ctx http.Context) error {
		var req service.LoginRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.Login(c, in.(*service.LoginRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.POST("/auth/register", func(ctx http.Context) error {
		var req service.RegisterRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.Register(c, in.(*service.RegisterRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r.POST("/auth/otp", func(ctx http.Context) error {
		var req service.OTPRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.RequestOTP(c, in.(*service.OTPRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
}

func registerPaymentRoutes(srv *http.Server, svc *service.PaymentService) {
	r := srv.Route("/v1")

	r.POST("/payment/validate", func(ctx http.Context) error {
		var req service.ValidateCardRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
			return svc.ValidateCard(c, in.(*service.ValidateCardRequest))
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
}
