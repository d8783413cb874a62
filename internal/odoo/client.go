// backend-go/internal/odoo/client.go
package odoo

import (
	"fmt"
	"strings"

	"github.com/kolo/xmlrpc"

	"github.com/kisaan/demand-dashboard/backend-go/internal/config"
)

// readOnlyMethods is the allowlist of model methods the sync client may
// invoke. The dashboard never mutates Odoo state.
var readOnlyMethods = map[string]bool{
	"read":         true,
	"search":       true,
	"search_read":  true,
	"search_count": true,
	"read_group":   true,
	"fields_get":   true,
}

// Client is an authenticated XML-RPC session against an Odoo instance.
type Client struct {
	object   *xmlrpc.Client
	db       string
	uid      int64
	password string
}

// Dial authenticates against the common endpoint and returns a client
// bound to the object endpoint.
func Dial(cfg config.OdooConfig) (*Client, error) {
	if cfg.URL == "" || cfg.DB == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("odoo url, db, username and password must all be configured")
	}

	base := strings.TrimRight(cfg.URL, "/")

	common, err := xmlrpc.NewClient(base+"/xmlrpc/2/common", nil)
	if err != nil {
		return nil, fmt.Errorf("odoo common endpoint: %w", err)
	}
	defer common.Close()

	var uid int64
	err = common.Call("authenticate", []interface{}{
		cfg.DB, cfg.Username, cfg.Password, map[string]interface{}{},
	}, &uid)
	if err != nil {
		return nil, fmt.Errorf("odoo authenticate: %w", err)
	}
	if uid == 0 {
		return nil, fmt.Errorf("odoo authenticate: invalid credentials for %s", cfg.Username)
	}

	object, err := xmlrpc.NewClient(base+"/xmlrpc/2/object", nil)
	if err != nil {
		return nil, fmt.Errorf("odoo object endpoint: %w", err)
	}

	return &Client{
		object:   object,
		db:       cfg.DB,
		uid:      uid,
		password: cfg.Password,
	}, nil
}

func (c *Client) Close() error {
	return c.object.Close()
}

// ExecuteKw calls a model method through execute_kw. Only read methods
// are permitted.
func (c *Client) ExecuteKw(model, method string, args []interface{}, kwargs map[string]interface{}) (interface{}, error) {
	if !readOnlyMethods[method] {
		return nil, fmt.Errorf("odoo method %q is not permitted", method)
	}
	if kwargs == nil {
		kwargs = map[string]interface{}{}
	}

	var result interface{}
	err := c.object.Call("execute_kw", []interface{}{
		c.db, c.uid, c.password, model, method, args, kwargs,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("odoo %s.%s: %w", model, method, err)
	}
	return result, nil
}

// SearchRead is the common fetch path: domain filter plus field list.
func (c *Client) SearchRead(model string, filter []interface{}, fields []string, extra map[string]interface{}) ([]map[string]interface{}, error) {
	kwargs := map[string]interface{}{"fields": fields}
	for k, v := range extra {
		kwargs[k] = v
	}

	result, err := c.ExecuteKw(model, "search_read", []interface{}{filter}, kwargs)
	if err != nil {
		return nil, err
	}

	raw, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("odoo %s: unexpected result type %T", model, result)
	}

	records := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		record, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("odoo %s: unexpected record type %T", model, item)
		}
		records = append(records, record)
	}
	return records, nil
}
