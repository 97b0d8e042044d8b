package taskspec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const jsonCatalog = `{
  "task_sets": [
    {
      "id": "Webmall_Single_Product_Search",
      "weighting": "answer_focused",
      "tasks": [
        {
          "id": "Webmall_Single_Product_Search_Task1",
          "task": "<task>Find the cheapest offer</task>",
          "correct_answer": {"answers": ["{{SHOP1_URL}}/product/widget"]},
          "relevant_offers": {
            "shop1": [{"product_url": "http://localhost:8081/product/widget", "webmall_id": 101}]
          }
        },
        {
          "id": "Webmall_Single_Product_Search_Task2",
          "weighting": "default",
          "correct_answer": {"type": "string", "answers": ["{{SHOP2_URL}}/product/gadget"]}
        }
      ]
    },
    {
      "id": "Webmall_Checkout",
      "tasks": [
        {
          "id": "Webmall_Checkout_Task1",
          "correct_answer": {"type": "checkout", "answers": ["{{SHOP3_URL}}/product/lamp"]},
          "user_details": {"name": "Jane Doe", "zip": 68159},
          "payment_info": {"method": "cod"}
        }
      ]
    }
  ]
}`

func TestLoadCatalogJSON(t *testing.T) {
	catalog, err := LoadCatalog(writeFile(t, "tasks.json", jsonCatalog))
	require.NoError(t, err)
	require.Len(t, catalog.Sets, 2)
	require.Len(t, catalog.Tasks(), 3)

	task, set, ok := catalog.Find("Webmall_Single_Product_Search_Task1")
	require.True(t, ok)
	assert.Equal(t, "Webmall_Single_Product_Search", set.ID)
	assert.Equal(t, AnswerString, task.AnswerType())
	offer := task.RelevantOffers["shop1"][0]
	assert.Equal(t, "101", offer.WebmallID.String())

	checkout, _, ok := catalog.Find("Webmall_Checkout_Task1")
	require.True(t, ok)
	assert.Equal(t, AnswerCheckout, checkout.AnswerType())
	assert.Equal(t, "Jane Doe", checkout.UserDetails["name"])

	_, _, ok = catalog.Find("missing")
	assert.False(t, ok)
}

func TestCatalogWeightingPrecedence(t *testing.T) {
	catalog, err := LoadCatalog(writeFile(t, "tasks.json", jsonCatalog))
	require.NoError(t, err)

	assert.Equal(t, "answer_focused", catalog.Weighting("Webmall_Single_Product_Search_Task1", "default"))
	assert.Equal(t, "default", catalog.Weighting("Webmall_Single_Product_Search_Task2", "x"))
	assert.Equal(t, "fallback", catalog.Weighting("Webmall_Checkout_Task1", "fallback"))
	assert.Equal(t, "fallback", catalog.Weighting("missing", "fallback"))
}

func TestLoadCatalogBareList(t *testing.T) {
	catalog, err := LoadCatalog(writeFile(t, "tasks.json", `[{"id": "set", "tasks": [{"id": "t1", "correct_answer": {"answers": ["x"]}}]}]`))
	require.NoError(t, err)
	require.Len(t, catalog.Tasks(), 1)
}

func TestLoadCatalogYAML(t *testing.T) {
	content := `
task_sets:
  - id: Webmall_Add_To_Cart
    weighting: answer_focused
    tasks:
      - id: Webmall_Add_To_Cart_Task1
        correct_answer:
          type: cart
          answers:
            - "{{SHOP4_URL}}/product/chair"
        relevant_offers:
          shop4:
            - product_url: "{{SHOP4_URL}}/product/chair"
              webmall_id: "chair-7"
`
	catalog, err := LoadCatalog(writeFile(t, "tasks.yaml", content))
	require.NoError(t, err)

	task, _, ok := catalog.Find("Webmall_Add_To_Cart_Task1")
	require.True(t, ok)
	assert.Equal(t, "cart", task.AnswerType())
	assert.Equal(t, []string{"{{SHOP4_URL}}/product/chair"}, task.CorrectAnswer.Answers)
	assert.Equal(t, "chair-7", task.RelevantOffers["shop4"][0].WebmallID.String())

	list, err := LoadCatalog(writeFile(t, "tasks.yml", "- id: s\n  tasks:\n    - id: t1\n"))
	require.NoError(t, err)
	assert.Len(t, list.Tasks(), 1)
}

func TestLoadCatalogRejectsBadFiles(t *testing.T) {
	_, err := LoadCatalog("")
	require.Error(t, err)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	_, err = LoadCatalog(writeFile(t, "broken.json", `{"task_sets": [`))
	require.Error(t, err)

	_, err = LoadCatalog(writeFile(t, "noid.json", `[{"id": "s", "tasks": [{"task": "x"}]}]`))
	require.ErrorContains(t, err, "without id")

	_, err = LoadCatalog(writeFile(t, "dup.json", `[{"id": "a", "tasks": [{"id": "t"}]}, {"id": "b", "tasks": [{"id": "t"}]}]`))
	require.ErrorContains(t, err, "duplicate task id")
}
