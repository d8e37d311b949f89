package join

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/l7mp/relate/pkg/record"
)

var _ = Describe("Three-level filtered joins", func() {
	var students, fees, payments []record.Record
	var config FilteredConfig

	BeforeEach(func() {
		students = []record.Record{
			{"id": int64(1), "name": "alice"},
			{"id": int64(2), "name": "bob"},
		}
		fees = []record.Record{
			{"id": int64(10), "title": "tuition"},
			{"id": int64(20), "title": "housing"},
		}
		payments = []record.Record{
			{"id": int64(1), "enrollmentId": int64(1), "feeId": int64(10), "paid": int64(100)},
			{"id": int64(2), "enrollmentId": int64(2), "feeId": int64(20), "paid": int64(50)},
			{"id": int64(3), "enrollmentId": int64(1), "feeId": int64(10), "paid": int64(25)},
		}
		config = FilteredConfig{
			ParentKey:      "id",
			ChildParentKey: "enrollmentId",
			MiddleKey:      "id",
			ChildKey:       "feeId",
			MiddleAs:       "fees",
			ChildAs:        "payments",
		}
	})

	It("should attach the full catalog to every parent", func() {
		out, err := AttachFiltered(students, fees, payments, config)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen(2))

		for _, parent := range out {
			catalog := parent["fees"].([]any)
			Expect(catalog).To(HaveLen(2))
			Expect(catalog[0].(record.Record)["id"]).To(Equal(int64(10)))
			Expect(catalog[1].(record.Record)["id"]).To(Equal(int64(20)))
		}
	})

	It("should attach only the children owned by the parent", func() {
		out, err := AttachFiltered(students, fees, payments, config)
		Expect(err).NotTo(HaveOccurred())

		aliceFees := out[0]["fees"].([]any)
		Expect(aliceFees[0].(record.Record)["payments"]).To(Equal([]any{
			record.Record{"id": int64(1), "enrollmentId": int64(1), "feeId": int64(10), "paid": int64(100)},
			record.Record{"id": int64(3), "enrollmentId": int64(1), "feeId": int64(10), "paid": int64(25)},
		}))
		Expect(aliceFees[1].(record.Record)["payments"]).To(Equal([]any{}))

		bobFees := out[1]["fees"].([]any)
		Expect(bobFees[0].(record.Record)["payments"]).To(Equal([]any{}))
		Expect(bobFees[1].(record.Record)["payments"]).To(HaveLen(1))
	})

	It("should resolve child cardinality one to a single value or the absence marker", func() {
		config.ChildCardinality = CardinalityOne
		parents := []record.Record{{"id": int64(1)}}
		middle := []record.Record{{"id": int64(10)}, {"id": int64(20)}}
		children := []record.Record{
			{"id": int64(1), "enrollmentId": int64(1), "feeId": int64(10), "paid": int64(100)},
		}
		config.MiddleAs = "fees"
		config.ChildAs = "payment"

		out, err := AttachFiltered(parents, middle, children, config)
		Expect(err).NotTo(HaveOccurred())

		catalog := out[0]["fees"].([]any)
		Expect(catalog[0].(record.Record)["payment"]).To(Equal(
			record.Record{"id": int64(1), "enrollmentId": int64(1), "feeId": int64(10), "paid": int64(100)}))
		Expect(catalog[1].(record.Record)).To(HaveKey("payment"))
		Expect(catalog[1].(record.Record)["payment"]).To(BeNil())
	})

	It("should resolve middle cardinality one to the first catalog entry", func() {
		config.MiddleCardinality = CardinalityOne

		out, err := AttachFiltered(students, fees, payments, config)
		Expect(err).NotTo(HaveOccurred())

		first := out[0]["fees"].(record.Record)
		Expect(first["id"]).To(Equal(int64(10)))
		Expect(first["payments"]).To(HaveLen(2))
	})

	It("should mark an empty catalog with the absence marker under middle cardinality one", func() {
		config.MiddleCardinality = CardinalityOne

		out, err := AttachFiltered(students, []record.Record{}, payments, config)
		Expect(err).NotTo(HaveOccurred())
		Expect(out[0]).To(HaveKey("fees"))
		Expect(out[0]["fees"]).To(BeNil())
	})

	It("should handle empty inputs", func() {
		out, err := AttachFiltered([]record.Record{}, []record.Record{}, []record.Record{}, config)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeEmpty())

		out, err = AttachFiltered(students, fees, []record.Record{}, config)
		Expect(err).NotTo(HaveOccurred())
		Expect(out[0]["fees"].([]any)[0].(record.Record)["payments"]).To(Equal([]any{}))
	})

	It("should reject invalid configurations", func() {
		config.MiddleAs = ""
		_, err := AttachFiltered(students, fees, payments, config)
		Expect(err).To(HaveOccurred())

		config.MiddleAs = "fees"
		config.ChildCardinality = Cardinality("several")
		_, err = AttachFiltered(students, fees, payments, config)
		Expect(err).To(HaveOccurred())
	})

	It("should never mutate the shared catalog", func() {
		feesBefore := []record.Record{}
		for _, f := range fees {
			feesBefore = append(feesBefore, record.DeepCopy(f))
		}

		out, err := AttachFiltered(students, fees, payments, config)
		Expect(err).NotTo(HaveOccurred())
		out[0]["fees"].([]any)[0].(record.Record)["title"] = "changed"

		Expect(fees).To(Equal(feesBefore))
	})
})
