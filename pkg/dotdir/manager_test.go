package dotdir_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/unibot/pkg/dotdir"
)

var _ = Describe("dotdir", func() {
	var tmpDir string
	var m *dotdir.Manager

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "dotdir-test-*")
		Expect(err).NotTo(HaveOccurred())

		// Resolve symlinks so paths match filepath.Abs results
		// (e.g. on macOS /var -> /private/var).
		tmpDir, err = filepath.EvalSymlinks(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		m = dotdir.NewManager()
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	// chdirAndHome moves into dir and points HOME at home for the duration
	// of the test so the real ~/.unibot is never picked up.
	chdirAndHome := func(dir, home string) {
		origDir, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(dir)).To(Succeed())
		DeferCleanup(func() { _ = os.Chdir(origDir) })

		origHome := os.Getenv("HOME")
		Expect(os.Setenv("HOME", home)).To(Succeed())
		DeferCleanup(func() { _ = os.Setenv("HOME", origHome) })
	}

	Describe("Target", func() {
		It("creates the override directory if it doesn't exist", func() {
			dir := filepath.Join(tmpDir, "newdir")
			result, err := m.Target(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(dir))

			info, err := os.Stat(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.IsDir()).To(BeTrue())
		})

		It("returns the override dir even when a local .unibot dir exists", func() {
			Expect(os.Mkdir(filepath.Join(tmpDir, ".unibot"), 0o755)).To(Succeed())
			chdirAndHome(tmpDir, tmpDir)

			overrideDir := filepath.Join(tmpDir, "override")
			result, err := m.Target(overrideDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(overrideDir))
		})

		It("returns the local .unibot dir when it exists", func() {
			local := filepath.Join(tmpDir, ".unibot")
			Expect(os.Mkdir(local, 0o755)).To(Succeed())
			chdirAndHome(tmpDir, filepath.Join(tmpDir, "nohome"))

			result, err := m.Target("")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(local))
		})

		It("falls back to the home .unibot dir", func() {
			home := filepath.Join(tmpDir, "home")
			Expect(os.MkdirAll(filepath.Join(home, ".unibot"), 0o755)).To(Succeed())
			work := filepath.Join(tmpDir, "work")
			Expect(os.Mkdir(work, 0o755)).To(Succeed())
			chdirAndHome(work, home)

			result, err := m.Target("")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(filepath.Join(home, ".unibot")))
		})

		It("returns empty string when nothing can be resolved", func() {
			chdirAndHome(tmpDir, tmpDir)

			result, err := m.Target("")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeEmpty())
		})
	})

	Describe("Ensure", func() {
		It("creates ~/.unibot when nothing exists", func() {
			chdirAndHome(tmpDir, tmpDir)

			result, err := m.Ensure("")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(filepath.Join(tmpDir, ".unibot")))
			Expect(filepath.Join(tmpDir, ".unibot")).To(BeADirectory())
		})
	})

	Describe("KnowledgePath", func() {
		It("is empty when no knowledge.yaml exists", func() {
			path, err := m.KnowledgePath(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(BeEmpty())
		})

		It("returns the knowledge file when present", func() {
			file := filepath.Join(tmpDir, dotdir.KnowledgeFile)
			Expect(os.WriteFile(file, []byte("topic: {}\n"), 0o600)).To(Succeed())

			path, err := m.KnowledgePath(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal(file))
		})
	})
})
