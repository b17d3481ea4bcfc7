package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable endpoint")
	userID := flag.String("user", "test-client-user", "user id for saved_jobs")
	spreadsheet := flag.String("sheet", "", "spreadsheet id for sheets_export; empty skips it")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "sarkarijobs-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testCatalogStats(ctx, session)
	firstID := testJobSearch(ctx, session)
	if firstID != "" {
		testJobDetail(ctx, session, firstID)
		testSavedJobs(ctx, session, *userID, firstID)
	}
	if *spreadsheet != "" {
		testSheetsExport(ctx, session, *spreadsheet)
	}

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, t := range res.Tools {
		fmt.Printf("  %s: %s\n", t.Name, t.Description)
	}
}

func testCatalogStats(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: catalog_stats")
	call(ctx, session, "catalog_stats", map[string]any{})
}

// testJobSearch returns the id of the first hit, if any
func testJobSearch(ctx context.Context, session *mcp.ClientSession) string {
	fmt.Println("\nTEST: job_search")

	result := call(ctx, session, "job_search", map[string]any{
		"urgency": "this-week",
		"sort":    "deadline",
		"limit":   5,
	})
	if result == nil {
		return ""
	}

	out, ok := result.StructuredContent.(map[string]any)
	if !ok {
		return ""
	}
	jobs, _ := out["jobs"].([]any)
	if len(jobs) == 0 {
		fmt.Println("no jobs closing this week")
		return ""
	}
	first, _ := jobs[0].(map[string]any)
	id, _ := first["id"].(string)
	return id
}

func testJobDetail(ctx context.Context, session *mcp.ClientSession, id string) {
	fmt.Println("\nTEST: job_detail")
	call(ctx, session, "job_detail", map[string]any{"slug": id})
}

func testSavedJobs(ctx context.Context, session *mcp.ClientSession, userID, jobID string) {
	fmt.Println("\nTEST: saved_jobs")

	call(ctx, session, "saved_jobs", map[string]any{"user_id": userID, "action": "save", "job_id": jobID})
	call(ctx, session, "saved_jobs", map[string]any{"user_id": userID})
	call(ctx, session, "saved_jobs", map[string]any{"user_id": userID, "action": "remove", "job_id": jobID})
}

func testSheetsExport(ctx context.Context, session *mcp.ClientSession, spreadsheetID string) {
	fmt.Println("\nTEST: sheets_export")

	call(ctx, session, "sheets_export", map[string]any{
		"filter": map[string]any{"urgency": "closing-soon"},
		"sheet":  map[string]any{"spreadsheet_id": spreadsheetID, "tab": "Closing Soon"},
	})
}

func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return nil
	}
	printResult(result)
	if result.IsError {
		log.Printf("%s returned a tool error", name)
		return nil
	}
	return result
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
