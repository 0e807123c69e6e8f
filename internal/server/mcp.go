package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"coolpc/catalog/internal/query"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"
	log "github.com/sirupsen/logrus"
)

// Server exposes the query engine as MCP tools. It owns all argument-bag
// validation and coercion, the engine only ever sees typed parameters.
// WithRecovery keeps a panicking call from taking the process down, the
// catalog snapshot and later calls are unaffected.
type Server struct {
	engine *query.Engine
	mcp    *mcpserver.MCPServer
}

func New(name, version string, engine *query.Engine) *Server {
	s := &Server{engine: engine}

	m := mcpserver.NewMCPServer(name, version, mcpserver.WithRecovery())

	m.AddTool(mcp.NewTool("search_products",
		mcp.WithDescription("Search the hardware catalog by keyword, optionally narrowed by category name and price range"),
		mcp.WithString("keyword", mcp.Required(),
			mcp.Description("Substring matched case-insensitively against brand, model, specs and the raw listing text")),
		mcp.WithString("category",
			mcp.Description("Substring filter on the category display name, e.g. CPU or 顯示卡")),
		mcp.WithNumber("min_price", mcp.Description("Inclusive lower bound on the current price")),
		mcp.WithNumber("max_price", mcp.Description("Inclusive upper bound on the current price")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results, default 10")),
	), s.handleSearchProducts)

	m.AddTool(mcp.NewTool("get_product_by_model",
		mcp.WithDescription("Look up one product by its exact model name, case-insensitively"),
		mcp.WithString("model", mcp.Required(), mcp.Description("Model name, e.g. i5-13400")),
	), s.handleGetProductByModel)

	m.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List every category with its stats and per-subcategory product counts"),
	), s.handleListCategories)

	m.AddTool(mcp.NewTool("get_category_products",
		mcp.WithDescription("List the products of one category, optionally narrowed to a single subcategory"),
		mcp.WithString("category_id", mcp.Required(), mcp.Description("Category id as returned by list_categories")),
		mcp.WithString("subcategory_name", mcp.Description("Exact subcategory name, matched case-insensitively")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of products, default 20")),
	), s.handleGetCategoryProducts)

	s.mcp = m
	return s
}

// ServeStdio blocks serving tool calls until stdin closes.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcp)
}

func (s *Server) handleSearchProducts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	keyword := strings.TrimSpace(cast.ToString(args["keyword"]))
	if keyword == "" {
		return mcp.NewToolResultError("keyword is required"), nil
	}

	params := query.SearchParams{
		Keyword:  keyword,
		Category: cast.ToString(args["category"]),
		Limit:    cast.ToInt(args["limit"]),
	}
	if v, ok := args["min_price"]; ok && v != nil {
		minPrice := cast.ToFloat64(v)
		params.MinPrice = &minPrice
	}
	if v, ok := args["max_price"]; ok && v != nil {
		maxPrice := cast.ToFloat64(v)
		params.MaxPrice = &maxPrice
	}

	results := s.engine.Search(params)
	log.Debugf("search_products %q matched %d products", keyword, len(results))
	return jsonResult(results)
}

func (s *Server) handleGetProductByModel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	model := strings.TrimSpace(cast.ToString(args["model"]))
	if model == "" {
		return mcp.NewToolResultError("model is required"), nil
	}

	return jsonResult(s.engine.GetByModel(model))
}

func (s *Server) handleListCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.engine.ListCategories())
}

func (s *Server) handleGetCategoryProducts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	categoryID := cast.ToString(args["category_id"])
	if strings.TrimSpace(categoryID) == "" {
		return mcp.NewToolResultError("category_id is required"), nil
	}

	result := s.engine.CategoryProducts(query.CategoryProductsParams{
		CategoryID:      categoryID,
		SubcategoryName: cast.ToString(args["subcategory_name"]),
		Limit:           cast.ToInt(args["limit"]),
	})
	return jsonResult(result)
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
