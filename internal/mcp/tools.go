package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchMoviesTool defines the search_movies MCP tool.
var searchMoviesTool = mcp.NewTool("search_movies",
	mcp.WithDescription("Search the movie knowledge base semantically. Returns matching descriptions and user reviews with film metadata."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query, Turkish or English"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 6)"),
	),
	mcp.WithString("type_filter",
		mcp.Description("Filter results by document type"),
		mcp.Enum("desc", "review"),
	),
)

// askMoviesTool defines the ask_movies MCP tool.
var askMoviesTool = mcp.NewTool("ask_movies",
	mcp.WithDescription("Ask the movie assistant a question. The question is routed through intent classification, retrieval, and answer generation, and the final Turkish answer is returned."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to ask the assistant"),
	),
)
