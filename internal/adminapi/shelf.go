package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

type advanceReply struct {
	Advanced int      `json:"advanced"`
	Expired  []string `json:"expired"`
	ToRemove []string `json:"to_remove"`
	Removed  []string `json:"removed,omitempty"`
}

func registerShelfRoutes(g *echo.Group) {
	g.POST("/shelf/advance", advanceShelf)
	g.POST("/shelf/sweep", sweepShelf)
	g.GET("/shelf/simulate", simulateShelf)
}

// advanceShelf moves every product one day forward. With sweep=true the
// products flagged for removal are taken off the shelf afterwards.
func advanceShelf(c echo.Context) error {
	inv := GetAppContext(c).Inventory()
	rep := inv.AdvanceDay()
	reply := advanceReply{
		Advanced: rep.Advanced,
		Expired:  nonNil(rep.Expired),
		ToRemove: nonNil(rep.ToRemove),
	}
	if cast.ToBool(c.QueryParam("sweep")) {
		reply.Removed = inv.Sweep()
	}
	zap.L().Info("shelf advanced from admin api",
		zap.String("namespace", "adminapi"),
		zap.Int("advanced", reply.Advanced),
		zap.Int("removed", len(reply.Removed)))
	return ok(c, reply)
}

func sweepShelf(c echo.Context) error {
	removed := GetAppContext(c).Inventory().Sweep()
	return ok(c, map[string]interface{}{"removed": nonNil(removed)})
}

// simulateShelf simulates the whole shelf on the worker pool.
func simulateShelf(c echo.Context) error {
	days, err := parseDays(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DAYS", err.Error(), nil)
	}
	results, err := GetAppContext(c).Simulate(c.Request().Context(), days)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SIMULATION_FAILED", "Failed to simulate the shelf", err.Error())
	}
	return writeResults(c, results)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
