package knowledge_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/unibot/pkg/knowledge"
)

var _ = Describe("Store", func() {
	var store *knowledge.Store

	BeforeEach(func() {
		store = knowledge.Default()
	})

	Describe("Default", func() {
		It("lists the built-in topics in document order", func() {
			Expect(store.Topics()).To(Equal([]string{
				knowledge.TopicUniversity,
				knowledge.TopicAdmissions,
				knowledge.TopicCourses,
				knowledge.TopicFacilities,
				knowledge.TopicPlacements,
				knowledge.TopicContact,
				knowledge.TopicFees,
				knowledge.TopicCampusLife,
			}))
		})

		It("returns the same store on every call", func() {
			Expect(knowledge.Default()).To(BeIdenticalTo(store))
		})
	})

	Describe("Get", func() {
		It("returns a topic map", func() {
			info := store.Get(knowledge.TopicUniversity)
			Expect(info.Kind()).To(Equal(knowledge.KindMap))
			Expect(info.Get("name").Text()).To(Equal("Manav Rachna University"))
		})

		It("returns a subtopic", func() {
			ug := store.Get(knowledge.TopicCourses, "undergraduate")
			Expect(ug.Keys()).To(ContainElements("engineering", "management", "law"))
			Expect(ug.Get("engineering").List()).To(HaveLen(9))
		})

		It("walks three levels", func() {
			fee := store.Get(knowledge.TopicFees, "approximate_annual_fees", "btech")
			Expect(fee.Text()).To(Equal("INR 1.82 - 2.44 Lakhs"))
		})

		It("returns empty for an unknown topic", func() {
			v := store.Get("nonexistent")
			Expect(v).To(Equal(knowledge.Empty()))
			Expect(v.IsEmpty()).To(BeTrue())
		})

		It("returns empty for an unknown subtopic of a known topic", func() {
			Expect(store.Get(knowledge.TopicFees, "nonexistent")).To(Equal(knowledge.Empty()))
		})

		It("returns empty when indexing into a list or text", func() {
			Expect(store.Get(knowledge.TopicCourses, "doctoral", "x")).To(Equal(knowledge.Empty()))
			Expect(store.Get(knowledge.TopicFees, "application_fee", "x")).To(Equal(knowledge.Empty()))
		})

		It("is idempotent and never mutated by reads", func() {
			first := store.Get(knowledge.TopicPlacements)
			items := first.Get("recruiters").List()
			items[0] = "tampered"

			second := store.Get(knowledge.TopicPlacements)
			Expect(second).To(Equal(first))
			Expect(second.Get("recruiters").List()[0]).To(Equal("KPMG Canada"))
		})

		It("tolerates a nil store", func() {
			var nilStore *knowledge.Store
			Expect(nilStore.Get("fees")).To(Equal(knowledge.Empty()))
			Expect(nilStore.Topics()).To(BeEmpty())
		})
	})

	Describe("Parse", func() {
		It("keeps document order", func() {
			s, err := knowledge.Parse([]byte("zeta:\n  b: \"2\"\n  a: \"1\"\nalpha: [x, y]\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Topics()).To(Equal([]string{"zeta", "alpha"}))
			Expect(s.Get("zeta").Keys()).To(Equal([]string{"b", "a"}))
			Expect(s.Get("alpha").List()).To(Equal([]string{"x", "y"}))
		})

		It("reads unquoted numbers as text", func() {
			s, err := knowledge.Parse([]byte("facts:\n  beds: 805\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Get("facts", "beds").Text()).To(Equal("805"))
		})

		It("rejects a non-mapping root", func() {
			_, err := knowledge.Parse([]byte("- a\n- b\n"))
			Expect(err).To(MatchError(knowledge.ErrInvalidDocument))
		})

		It("rejects nested structures inside lists", func() {
			_, err := knowledge.Parse([]byte("topic:\n  - name: x\n"))
			Expect(err).To(MatchError(knowledge.ErrInvalidDocument))
		})

		It("rejects malformed YAML", func() {
			_, err := knowledge.Parse([]byte("topic: [unclosed\n"))
			Expect(err).To(MatchError(knowledge.ErrInvalidDocument))
		})

		It("rejects an empty document", func() {
			_, err := knowledge.Parse([]byte(""))
			Expect(err).To(MatchError(knowledge.ErrInvalidDocument))
		})
	})

	Describe("Load", func() {
		It("loads a file from disk", func() {
			path := filepath.Join(GinkgoT().TempDir(), "knowledge.yaml")
			Expect(os.WriteFile(path, []byte("fees:\n  application_fee: \"INR 10\"\n"), 0o600)).To(Succeed())

			s, err := knowledge.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Get("fees", "application_fee").Text()).To(Equal("INR 10"))
		})

		It("reports a missing file", func() {
			_, err := knowledge.Load(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Markdown", func() {
		It("renders headings, lists and fields", func() {
			md, err := store.Markdown(knowledge.TopicCampusLife)
			Expect(err).NotTo(HaveOccurred())
			Expect(md).To(HavePrefix("# Campus Life\n"))
			Expect(md).To(ContainSubstring("## Clubs"))
			Expect(md).To(ContainSubstring("- Technical clubs"))
		})

		It("renders text fields inline", func() {
			md, err := store.Markdown(knowledge.TopicUniversity)
			Expect(err).NotTo(HaveOccurred())
			Expect(md).To(ContainSubstring("- **Motto:** Creating a better human being"))
		})

		It("fails for an unknown topic", func() {
			_, err := store.Markdown("nonexistent")
			Expect(err).To(MatchError(knowledge.ErrUnknownTopic))
		})
	})
})
