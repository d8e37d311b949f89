package join

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/l7mp/relate/internal/testutils"
	"github.com/l7mp/relate/pkg/record"
)

var _ = Describe("Composite joins", func() {
	var products, stock []record.Record

	BeforeEach(func() {
		products = []record.Record{
			{"sku": "A", "origin": "US"},
			{"sku": "A", "origin": "EU"},
			{"sku": "B", "origin": "EU"},
		}
		stock = testutils.TestStock
	})

	It("should attach only the children matching the whole key tuple", func() {
		out, err := AttachManyComposite(products, stock,
			[]string{"sku", "origin"}, []string{"sku", "origin"}, "stock")
		Expect(err).NotTo(HaveOccurred())

		Expect(out[0]["stock"]).To(Equal([]any{
			record.Record{"sku": "A", "origin": "US", "qty": int64(5)},
		}))
		Expect(out[1]["stock"]).To(Equal([]any{
			record.Record{"sku": "A", "origin": "EU", "qty": int64(9)},
		}))
		Expect(out[2]["stock"]).To(Equal([]any{}))
	})

	It("should allow different field names on the two sides", func() {
		shipments := []record.Record{
			{"productSku": "A", "region": "US", "eta": "monday"},
		}
		out, err := AttachManyComposite(products, shipments,
			[]string{"sku", "origin"}, []string{"productSku", "region"}, "shipments")
		Expect(err).NotTo(HaveOccurred())

		Expect(out[0]["shipments"]).To(HaveLen(1))
		Expect(out[1]["shipments"]).To(Equal([]any{}))
	})

	It("should reject mismatched key tuple arities", func() {
		_, err := AttachManyComposite(products, stock,
			[]string{"sku", "origin"}, []string{"sku"}, "stock")
		Expect(err).To(HaveOccurred())

		_, err = AttachManyNested(products, stock,
			[]string{"sku"}, []string{"sku", "origin"}, "stock")
		Expect(err).To(HaveOccurred())
	})

	Describe("Strategy equivalence", func() {
		It("should produce identical one-to-many results via both strategies", func() {
			serialized, err := AttachManyComposite(products, stock,
				[]string{"sku", "origin"}, []string{"sku", "origin"}, "stock")
			Expect(err).NotTo(HaveOccurred())

			nested, err := AttachManyNested(products, stock,
				[]string{"sku", "origin"}, []string{"sku", "origin"}, "stock")
			Expect(err).NotTo(HaveOccurred())

			Expect(nested).To(Equal(serialized))
		})

		It("should produce identical one-to-one results via both strategies", func() {
			duplicated := append(append([]record.Record{}, stock...),
				record.Record{"sku": "A", "origin": "US", "qty": int64(99)})

			serialized, err := AttachOneComposite(products, duplicated,
				[]string{"sku", "origin"}, []string{"sku", "origin"}, "stock")
			Expect(err).NotTo(HaveOccurred())

			nested, err := AttachOneNested(products, duplicated,
				[]string{"sku", "origin"}, []string{"sku", "origin"}, "stock")
			Expect(err).NotTo(HaveOccurred())

			Expect(nested).To(Equal(serialized))
			// first match wins under child input order
			Expect(serialized[0]["stock"].(record.Record)["qty"]).To(Equal(int64(5)))
			// no match yields the explicit absence marker
			Expect(serialized[2]).To(HaveKey("stock"))
			Expect(serialized[2]["stock"]).To(BeNil())
		})

		It("should agree when key values differ only in rendering", func() {
			// string "1" and int64(1) render to the same key component
			parents := []record.Record{{"sku": "1", "origin": "US"}}
			children := []record.Record{{"sku": int64(1), "origin": "US", "qty": int64(3)}}

			serialized, err := AttachManyComposite(parents, children,
				[]string{"sku", "origin"}, []string{"sku", "origin"}, "stock")
			Expect(err).NotTo(HaveOccurred())

			nested, err := AttachManyNested(parents, children,
				[]string{"sku", "origin"}, []string{"sku", "origin"}, "stock")
			Expect(err).NotTo(HaveOccurred())

			Expect(nested).To(Equal(serialized))
			Expect(serialized[0]["stock"]).To(HaveLen(1))
		})

		It("should agree on missing versus empty key fields", func() {
			// a missing parent field renders to the empty component, same as
			// a child field holding the empty string
			parents := []record.Record{{"origin": "US"}}
			children := []record.Record{{"sku": "", "origin": "US", "qty": int64(5)}}

			serialized, err := AttachManyComposite(parents, children,
				[]string{"sku", "origin"}, []string{"sku", "origin"}, "stock")
			Expect(err).NotTo(HaveOccurred())

			nested, err := AttachManyNested(parents, children,
				[]string{"sku", "origin"}, []string{"sku", "origin"}, "stock")
			Expect(err).NotTo(HaveOccurred())

			Expect(nested).To(Equal(serialized))
			Expect(serialized[0]["stock"]).To(Equal([]any{
				record.Record{"sku": "", "origin": "US", "qty": int64(5)},
			}))
		})

		It("should agree on empty inputs", func() {
			serialized, err := AttachManyComposite([]record.Record{}, []record.Record{},
				[]string{"sku", "origin"}, []string{"sku", "origin"}, "stock")
			Expect(err).NotTo(HaveOccurred())
			Expect(serialized).To(BeEmpty())

			nested, err := AttachManyNested([]record.Record{}, []record.Record{},
				[]string{"sku", "origin"}, []string{"sku", "origin"}, "stock")
			Expect(err).NotTo(HaveOccurred())
			Expect(nested).To(BeEmpty())
		})
	})
})
