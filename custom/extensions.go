// Package custom holds site-specific extensions registered through the
// command, route and GraphQL registries. Import it for side effects.
package custom

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/iasolb/EdgewaterInventoryManager/api"
	"github.com/iasolb/EdgewaterInventoryManager/cmd"
	"github.com/iasolb/EdgewaterInventoryManager/config"
	gqlregistry "github.com/iasolb/EdgewaterInventoryManager/graphql/registry"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

func init() {
	gqlregistry.Register("decodeType", func(_ context.Context, args map[string]interface{}) (interface{}, error) {
		name, _ := args["name"].(string)
		return map[string]int{"typeId": farm.DecodeType(name)}, nil
	})

	cmd.Register(&cobra.Command{
		Use:   "items:decode-type NAME",
		Short: "Print the type code for an item type name",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), farm.DecodeType(args[0]))
		},
	})

	api.RegisterGET("/version", func(c echo.Context) error {
		cfg := config.LoadAppConfig()
		return c.JSON(http.StatusOK, map[string]string{"app": cfg.AppName, "env": cfg.Env})
	})
}
