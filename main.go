// @title Storefront API
// @version 1.0
// @description Catalog, cart, favorites and Stripe checkout for an online store.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
package main

import (
	"storefront/commands"
	_ "storefront/docs"
)

func main() {
	commands.Execute()
}
