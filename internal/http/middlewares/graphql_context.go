package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/torchtask/taskhub/internal/graph/authctx"
)

// GraphQLContext installs the per-request authorization context before the
// GraphQL handler runs. Authentication failures degrade to anonymous here;
// resolvers decide whether anonymous is acceptable per operation.
func GraphQLContext(builder *authctx.Builder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ac := builder.Build(ctx.Request.Context(), ctx.GetHeader("Authorization"))

		ctx.Request = ctx.Request.WithContext(authctx.With(ctx.Request.Context(), ac))

		ctx.Next()
	}
}
