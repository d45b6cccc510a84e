// Package records exposes the generic record store over /api/records.
package records

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iasolb/EdgewaterInventoryManager/api"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
	"github.com/iasolb/EdgewaterInventoryManager/model/repository/gateway"
	"github.com/iasolb/EdgewaterInventoryManager/model/repository/store"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

func init() {
	api.RegisterModule(RegisterRecordRoutes)
}

func RegisterRecordRoutes(apiGroup *echo.Group, d *api.Deps) {
	h := &handler{svc: d.Farm}
	g := apiGroup.Group("/records")
	g.GET("", h.entities)
	g.GET("/:entity", h.list)
	g.POST("/:entity", h.create)
	g.POST("/:entity/delete", h.deleteMany)
	g.GET("/:entity/:id", h.get)
	g.PATCH("/:entity/:id", h.edit)
	g.DELETE("/:entity/:id", h.remove)
}

type handler struct {
	svc *farm.Service
}

func (h *handler) resource(c echo.Context) (farm.Resource, error) {
	r, ok := h.svc.Resource(c.Param("entity"))
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "unknown entity "+c.Param("entity"))
	}
	return r, nil
}

// decodeBody reads a JSON body keeping numbers as json.Number. Path params are
// not merged in.
func decodeBody(c echo.Context, out any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	return dec.Decode(out)
}

// parseID converts the path id to the primary key type.
func parseID(d *entity.Descriptor, raw string) (any, error) {
	col, _ := d.Column(d.PrimaryKey)
	return store.Coerce(col, raw)
}

type entityInfo struct {
	Tag        string   `json:"tag"`
	Table      string   `json:"table"`
	PrimaryKey string   `json:"primary_key"`
	ReadOnly   bool     `json:"read_only"`
	Columns    []string `json:"columns"`
}

func (h *handler) entities(c echo.Context) error {
	var out []entityInfo
	for _, r := range h.svc.Resources() {
		d := r.Descriptor()
		out = append(out, entityInfo{Tag: d.Tag, Table: d.Table, PrimaryKey: d.PrimaryKey, ReadOnly: d.ReadOnly, Columns: d.ColumnNames()})
	}
	return c.JSON(http.StatusOK, out)
}

// list treats every query parameter except q as an exact column filter.
func (h *handler) list(c echo.Context) error {
	start := time.Now()
	r, err := h.resource(c)
	if err != nil {
		return err
	}
	d := r.Descriptor()
	filters := store.Filters{}
	for name, values := range c.QueryParams() {
		if name == "q" || len(values) == 0 {
			continue
		}
		col, ok := d.Column(name)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown column " + name})
		}
		v, err := store.Coerce(col, values[0])
		if err != nil {
			return api.Error(c, err)
		}
		filters[name] = v
	}
	rows, err := r.List(c.Request().Context(), filters, c.QueryParam("q"))
	if err != nil {
		return api.Error(c, err)
	}
	api.Duration(c, start)
	return c.JSON(http.StatusOK, rows)
}

func (h *handler) get(c echo.Context) error {
	r, err := h.resource(c)
	if err != nil {
		return err
	}
	id, err := parseID(r.Descriptor(), c.Param("id"))
	if err != nil {
		return api.Error(c, err)
	}
	rec, err := r.Get(c.Request().Context(), id)
	if err != nil {
		return api.Error(c, err)
	}
	if rec == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *handler) create(c echo.Context) error {
	start := time.Now()
	r, err := h.resource(c)
	if err != nil {
		return err
	}
	var fields map[string]any
	if err := decodeBody(c, &fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rec, err := r.Create(c.Request().Context(), fields)
	if err != nil {
		return api.Error(c, err)
	}
	api.Duration(c, start)
	return c.JSON(http.StatusCreated, rec)
}

// edit applies a guarded update. ?strict=true rejects disallowed fields
// instead of dropping them.
func (h *handler) edit(c echo.Context) error {
	start := time.Now()
	r, err := h.resource(c)
	if err != nil {
		return err
	}
	id, err := parseID(r.Descriptor(), c.Param("id"))
	if err != nil {
		return api.Error(c, err)
	}
	var updates map[string]any
	if err := decodeBody(c, &updates); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	mode := gateway.DropDisallowed
	if strict, _ := strconv.ParseBool(c.QueryParam("strict")); strict {
		mode = gateway.RejectDisallowed
	}
	rec, err := r.Edit(c.Request().Context(), id, updates, mode)
	if err != nil {
		return api.Error(c, err)
	}
	if rec == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	api.Duration(c, start)
	return c.JSON(http.StatusOK, rec)
}

func (h *handler) remove(c echo.Context) error {
	r, err := h.resource(c)
	if err != nil {
		return err
	}
	id, err := parseID(r.Descriptor(), c.Param("id"))
	if err != nil {
		return api.Error(c, err)
	}
	ok, err := r.Delete(c.Request().Context(), id)
	if err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": ok})
}

func (h *handler) deleteMany(c echo.Context) error {
	r, err := h.resource(c)
	if err != nil {
		return err
	}
	var body struct {
		IDs []any `json:"ids"`
	}
	if err := decodeBody(c, &body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if len(body.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids array is required and must not be empty"})
	}
	d := r.Descriptor()
	col, _ := d.Column(d.PrimaryKey)
	ids := make([]any, len(body.IDs))
	for i, raw := range body.IDs {
		v, err := store.Coerce(col, raw)
		if err != nil {
			return api.Error(c, err)
		}
		ids[i] = v
	}
	removed, err := r.DeleteMany(c.Request().Context(), ids)
	if err != nil {
		return api.Error(c, err)
	}
	if removed == nil {
		removed = []any{}
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": removed, "requested": len(ids)})
}
