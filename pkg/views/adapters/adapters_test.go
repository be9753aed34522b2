package adapters

import (
	"net/http"

	"github.com/toyz/viewcheck/pkg/typecheck"
	"github.com/toyz/viewcheck/pkg/views"
)

func helloWorld(c views.RequestContext) error {
	return c.String(http.StatusOK, "Hello World!")
}

func getUser(c views.RequestContext) error {
	return c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
}

func missing(views.RequestContext) error {
	return views.ErrNotFound("no such page")
}

// testMapper returns the routes every adapter test serves
func testMapper() *views.Mapper {
	m := views.NewMapper("demo")
	views.MakeView(views.On(m))(helloWorld)
	views.MakeView(views.On(m), views.At("/users/{id:int}"))(getUser)
	views.MakeView(views.On(m))(missing)
	views.MakeView(views.On(m), views.Named("addNumbers"), views.Method(http.MethodPost))(
		views.MustEndpoint(
			typecheck.Signature{Name: "addNumbers", Params: []string{"iLeft", "iRight"}},
			func(args []any, _ typecheck.Kwargs) (any, error) {
				return args[0].(int64) + args[1].(int64), nil
			},
			views.WithRegistry(typecheck.NewRegistry()),
		),
	)
	return m
}
